package config

// Variant names accepted in BOT_VARIANT.
const (
	VariantTour   = "tour"
	VariantCruise = "cruise"
)

// TripOption is one bookable tour or cruise type. Titles are what the
// user sees in the list menu; either language resolves to the same price.
type TripOption struct {
	ID      string
	TitleEN string
	TitleAR string
	DescEN  string
	DescAR  string
	// BasePrice is the per-adult price in OMR.
	BasePrice float64
}

// MenuChoice is a generic list-row option (time slots, payment methods).
type MenuChoice struct {
	ID      string
	TitleEN string
	TitleAR string
	DescEN  string
	DescAR  string
}

// Variant carries every policy difference between the two deployments so
// the engine itself stays a single code path. The business rules
// deliberately differ (child pricing, discount threshold, precision);
// do not unify them.
type Variant struct {
	Name         string
	BusinessEN   string
	BusinessAR   string
	ContactPhone string

	Trips            []TripOption
	DefaultBasePrice float64

	// ChildPriceFactor scales the adult base price for children:
	// 0.5 on the tour deployment, 1.0 on the cruise deployment.
	ChildPriceFactor float64
	// GroupDiscountMin is the total-guest count at which the flat
	// discount applies: 4 for tours, 3 for cruises.
	GroupDiscountMin  int
	GroupDiscountRate float64
	// CurrencyDecimals: 2 for the tour deployment, 3 (baisa) for cruises.
	CurrencyDecimals int

	// MaxCapacity is the per-date, per-type guest ceiling. Zero means
	// unlimited (tour boats run per-group, not per-vessel).
	MaxCapacity int

	CollectEmail    bool
	CollectInfants  bool
	CollectRequests bool

	// Exactly one of these is non-empty: the final step is a time slot
	// for tours and a payment method for cruises.
	TimeSlots      []MenuChoice
	PaymentMethods []MenuChoice
}

// FinalStepIsPayment reports whether the terminal menu collects a payment
// method instead of a departure time.
func (v Variant) FinalStepIsPayment() bool {
	return len(v.PaymentMethods) > 0
}

// TripByID resolves a menu interaction id to its trip option.
func (v Variant) TripByID(id string) (TripOption, bool) {
	for _, t := range v.Trips {
		if t.ID == id {
			return t, true
		}
	}
	return TripOption{}, false
}

// BasePriceFor returns the per-adult price for a trip display name in
// either language, falling back to the variant default for unknown keys.
func (v Variant) BasePriceFor(tripName string) float64 {
	for _, t := range v.Trips {
		if t.TitleEN == tripName || t.TitleAR == tripName {
			return t.BasePrice
		}
	}
	return v.DefaultBasePrice
}

// LoadVariant returns the business configuration for a variant name.
// Callers validate the name via LoadEnv first.
func LoadVariant(name string) Variant {
	if name == VariantCruise {
		return cruiseVariant
	}
	return tourVariant
}

var tourVariant = Variant{
	Name:         VariantTour,
	BusinessEN:   "Al Bahr Sea Tours",
	BusinessAR:   "جولات البحر",
	ContactPhone: "+968 24 123456",
	Trips: []TripOption{
		{ID: "trip_dolphin", TitleEN: "Dolphin Watching", TitleAR: "مشاهدة الدلافين", DescEN: "25 OMR per person", DescAR: "25 ريال للشخص", BasePrice: 25},
		{ID: "trip_snorkeling", TitleEN: "Snorkeling", TitleAR: "الغوص", DescEN: "35 OMR per person", DescAR: "35 ريال للشخص", BasePrice: 35},
		{ID: "trip_dhow", TitleEN: "Dhow Cruise", TitleAR: "رحلة القارب", DescEN: "40 OMR per person", DescAR: "40 ريال للشخص", BasePrice: 40},
		{ID: "trip_fishing", TitleEN: "Fishing Trip", TitleAR: "رحلة صيد", DescEN: "50 OMR per person", DescAR: "50 ريال للشخص", BasePrice: 50},
	},
	DefaultBasePrice:  30,
	ChildPriceFactor:  0.5,
	GroupDiscountMin:  4,
	GroupDiscountRate: 0.10,
	CurrencyDecimals:  2,
	TimeSlots: []MenuChoice{
		{ID: "time_8am", TitleEN: "8:00 AM", TitleAR: "8:00 صباحاً", DescEN: "Early morning", DescAR: "الصباح الباكر"},
		{ID: "time_9am", TitleEN: "9:00 AM", TitleAR: "9:00 صباحاً", DescEN: "Morning", DescAR: "جولة الصباح"},
		{ID: "time_10am", TitleEN: "10:00 AM", TitleAR: "10:00 صباحاً", DescEN: "Late morning", DescAR: "آخر الصباح"},
		{ID: "time_2pm", TitleEN: "2:00 PM", TitleAR: "2:00 ظهراً", DescEN: "Afternoon", DescAR: "الظهيرة"},
		{ID: "time_4pm", TitleEN: "4:00 PM", TitleAR: "4:00 عصراً", DescEN: "Late afternoon", DescAR: "العصر"},
		{ID: "time_6pm", TitleEN: "6:00 PM", TitleAR: "6:00 مساءً", DescEN: "Evening", DescAR: "المساء"},
	},
}

var cruiseVariant = Variant{
	Name:         VariantCruise,
	BusinessEN:   "Al Bahr Marina Cruises",
	BusinessAR:   "رحلات مارينا البحر",
	ContactPhone: "+968 24 123456",
	Trips: []TripOption{
		{ID: "trip_sunset", TitleEN: "Sunset Cruise", TitleAR: "رحلة الغروب", DescEN: "30 OMR per person", DescAR: "30 ريال للشخص", BasePrice: 30},
		{ID: "trip_coastal", TitleEN: "Coastal Cruise", TitleAR: "الرحلة الساحلية", DescEN: "35 OMR per person", DescAR: "35 ريال للشخص", BasePrice: 35},
		{ID: "trip_dinner", TitleEN: "Dinner Cruise", TitleAR: "رحلة العشاء", DescEN: "45 OMR per person", DescAR: "45 ريال للشخص", BasePrice: 45},
	},
	DefaultBasePrice:  35,
	ChildPriceFactor:  1.0,
	GroupDiscountMin:  3,
	GroupDiscountRate: 0.10,
	CurrencyDecimals:  3,
	MaxCapacity:       135,
	CollectEmail:      true,
	CollectInfants:    true,
	CollectRequests:   true,
	PaymentMethods: []MenuChoice{
		{ID: "pay_bank", TitleEN: "Bank Transfer", TitleAR: "تحويل بنكي", DescEN: "Details sent after booking", DescAR: "التفاصيل بعد الحجز"},
		{ID: "pay_cash", TitleEN: "Cash at Marina", TitleAR: "نقداً في المارينا", DescEN: "Pay before boarding", DescAR: "الدفع قبل الصعود"},
		{ID: "pay_card", TitleEN: "Card on Arrival", TitleAR: "بطاقة عند الوصول", DescEN: "Visa / Mastercard", DescAR: "فيزا / ماستركارد"},
	},
}
