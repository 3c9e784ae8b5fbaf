package bot

import (
	"fmt"
	"strconv"
	"strings"

	"albahr-backend/internal/config"
	"albahr-backend/internal/domain/models"
	"albahr-backend/internal/whatsapp"
)

// Catalog renders every user-facing message for one business variant in
// the session's language.
type Catalog struct {
	v config.Variant
}

func NewCatalog(v config.Variant) Catalog {
	return Catalog{v: v}
}

// tripDisplay localizes a canonical (English) trip title for the
// session's language. Sessions and sheet rows always hold the English
// title; only outbound messages localize it.
func (c Catalog) tripDisplay(lang models.Language, tripName string) string {
	if lang != models.LangArabic {
		return tripName
	}
	for _, t := range c.v.Trips {
		if t.TitleEN == tripName {
			return t.TitleAR
		}
	}
	return tripName
}

// LanguageMenu is the first thing any new user sees.
func (c Catalog) LanguageMenu() *whatsapp.Interactive {
	return whatsapp.NewList(
		c.v.BusinessEN,
		"Welcome! Please choose your language:\n\nمرحباً! الرجاء اختيار لغتك:",
		"Select Language",
		[]whatsapp.ListSection{{
			Title: "Choose Language",
			Rows: []whatsapp.ListRow{
				{ID: "lang_english", Title: "🇺🇸 English", Description: "Continue in English"},
				{ID: "lang_arabic", Title: "🇴🇲 العربية", Description: "المتابعة بالعربية"},
			},
		}},
	)
}

// WelcomeMenu lists every trip plus the info/booking rows.
func (c Catalog) WelcomeMenu(lang models.Language) *whatsapp.Interactive {
	tripRows := make([]whatsapp.ListRow, 0, len(c.v.Trips))
	for _, t := range c.v.Trips {
		row := whatsapp.ListRow{ID: "about_" + t.ID, Title: t.TitleEN, Description: t.DescEN}
		if lang == models.LangArabic {
			row.Title, row.Description = t.TitleAR, t.DescAR
		}
		tripRows = append(tripRows, row)
	}

	if lang == models.LangArabic {
		return whatsapp.NewList(
			c.v.BusinessAR,
			"مرحباً! اختر مغامرتك:",
			"عرض الخيارات",
			[]whatsapp.ListSection{
				{Title: "الرحلات الشعبية", Rows: tripRows},
				{Title: "المعلومات والحجز", Rows: []whatsapp.ListRow{
					{ID: topicPricing, Title: "💰 الأسعار", Description: "أسعار الرحلات"},
					{ID: topicLocation, Title: "📍 الموقع", Description: "عنواننا"},
					{ID: topicSchedule, Title: "🕒 الجدول", Description: "مواعيد الرحلات"},
					{ID: topicContact, Title: "📞 اتصل بنا", Description: "تواصل معنا"},
					{ID: "book_now", Title: "📅 احجز الآن", Description: "احجز رحلة"},
				}},
			},
		)
	}
	return whatsapp.NewList(
		c.v.BusinessEN,
		"Welcome! Choose your adventure:",
		"View Options",
		[]whatsapp.ListSection{
			{Title: "Popular Trips", Rows: tripRows},
			{Title: "Info & Booking", Rows: []whatsapp.ListRow{
				{ID: topicPricing, Title: "💰 Pricing", Description: "Trip prices"},
				{ID: topicLocation, Title: "📍 Location", Description: "Our address"},
				{ID: topicSchedule, Title: "🕒 Schedule", Description: "Trip timings"},
				{ID: topicContact, Title: "📞 Contact", Description: "Get in touch"},
				{ID: "book_now", Title: "📅 Book Now", Description: "Reserve a trip"},
			}},
		},
	)
}

// TripMenu asks which trip/cruise type to book. Cruise deployments pass
// in the subset that still has capacity for the requested party.
func (c Catalog) TripMenu(lang models.Language, name string, trips []config.TripOption) *whatsapp.Interactive {
	rows := make([]whatsapp.ListRow, 0, len(trips))
	for _, t := range trips {
		row := whatsapp.ListRow{ID: t.ID, Title: t.TitleEN, Description: t.DescEN}
		if lang == models.LangArabic {
			row.Title, row.Description = t.TitleAR, t.DescAR
		}
		rows = append(rows, row)
	}

	if lang == models.LangArabic {
		return whatsapp.NewList("اختر الرحلة", fmt.Sprintf("ممتاز %s! أي رحلة تريد؟", name), "اختر الرحلة",
			[]whatsapp.ListSection{{Title: "الرحلات المتاحة", Rows: rows}})
	}
	return whatsapp.NewList("Choose Trip", fmt.Sprintf("Great %s! Which trip?", name), "Select Trip",
		[]whatsapp.ListSection{{Title: "Available Trips", Rows: rows}})
}

// TimeMenu asks for the departure slot (tour deployment's final step).
func (c Catalog) TimeMenu(lang models.Language, sess *models.Session) *whatsapp.Interactive {
	morning, afternoon := []whatsapp.ListRow{}, []whatsapp.ListRow{}
	for _, slot := range c.v.TimeSlots {
		row := whatsapp.ListRow{ID: slot.ID, Title: slot.TitleEN, Description: slot.DescEN}
		if lang == models.LangArabic {
			row.Title, row.Description = slot.TitleAR, slot.DescAR
		}
		if strings.HasSuffix(slot.ID, "am") {
			morning = append(morning, row)
		} else {
			afternoon = append(afternoon, row)
		}
	}

	if lang == models.LangArabic {
		body := fmt.Sprintf("%s لـ %s\n%d ضيوف", sess.BookingDate, c.tripDisplay(lang, sess.TripType), sess.TotalGuests())
		return whatsapp.NewList("اختر الوقت", body, "اختر الوقت", []whatsapp.ListSection{
			{Title: "جولات الصباح", Rows: morning},
			{Title: "جولات الظهيرة", Rows: afternoon},
		})
	}
	body := fmt.Sprintf("%s for %s\n%d guests", sess.BookingDate, sess.TripType, sess.TotalGuests())
	return whatsapp.NewList("Choose Time", body, "Select Time", []whatsapp.ListSection{
		{Title: "Morning Sessions", Rows: morning},
		{Title: "Afternoon Sessions", Rows: afternoon},
	})
}

// PaymentMenu asks for the payment method (cruise deployment's final step).
func (c Catalog) PaymentMenu(lang models.Language) *whatsapp.Interactive {
	rows := make([]whatsapp.ListRow, 0, len(c.v.PaymentMethods))
	for _, m := range c.v.PaymentMethods {
		row := whatsapp.ListRow{ID: m.ID, Title: m.TitleEN, Description: m.DescEN}
		if lang == models.LangArabic {
			row.Title, row.Description = m.TitleAR, m.DescAR
		}
		rows = append(rows, row)
	}
	if lang == models.LangArabic {
		return whatsapp.NewList("طريقة الدفع", "كيف تود الدفع؟", "اختر الطريقة",
			[]whatsapp.ListSection{{Title: "طرق الدفع", Rows: rows}})
	}
	return whatsapp.NewList("Payment Method", "How would you like to pay?", "Select Method",
		[]whatsapp.ListSection{{Title: "Payment Options", Rows: rows}})
}

// Step prompts. Each is sent on entering the step and re-sent verbatim on
// invalid input, so a wrong answer never advances or changes the question.

func (c Catalog) BookingStart(lang models.Language) string {
	if lang == models.LangArabic {
		return "📝 *لنحجز رحلتك!* 🎫\n\nسأساعدك في حجز رحلتك البحرية. 🌊\n\nأولاً، الرجاء إرسال:\n\n👤 *الاسم الكامل*\n\n*مثال:*\nأحمد الحارثي"
	}
	return "📝 *Let's Book Your Trip!* 🎫\n\nI'll help you book your sea adventure. 🌊\n\nFirst, please send me your:\n\n👤 *Full Name*\n\n*Example:*\nAhmed Al Harthy"
}

func (c Catalog) AskContact(lang models.Language, name string) string {
	if lang == models.LangArabic {
		return fmt.Sprintf("ممتاز، %s! 👋\n\nالآن الرجاء إرسال:\n\n📞 *رقم الهاتف*\n\n*مثال:*\n91234567", name)
	}
	return fmt.Sprintf("Perfect, %s! 👋\n\nNow please send me your:\n\n📞 *Phone Number*\n\n*Example:*\n91234567", name)
}

func (c Catalog) AskEmail(lang models.Language) string {
	if lang == models.LangArabic {
		return "📧 *البريد الإلكتروني*\n\nالرجاء إرسال بريدك الإلكتروني لتأكيد الحجز.\n\nأرسل - للتخطي."
	}
	return "📧 *Email Address*\n\nPlease send your email for the booking confirmation.\n\nSend - to skip."
}

func (c Catalog) AskDate(lang models.Language) string {
	if lang == models.LangArabic {
		return "📅 *التاريخ المفضل*\n\nالرجاء إرسال *التاريخ المفضل*:\n\n📋 *أمثلة على التنسيق:*\n• **غداً**\n• **29 أكتوبر**\n• **2025-12-25**\n\nسنتحقق من التوفر لتاريخك المختار! 📅"
	}
	return "📅 *Preferred Date*\n\nPlease send your *preferred date*:\n\n📋 *Format Examples:*\n• **Tomorrow**\n• **October 29**\n• **2025-12-25**\n\nWe'll check availability for your chosen date! 📅"
}

func (c Catalog) AskAdults(lang models.Language, date string) string {
	if lang == models.LangArabic {
		return fmt.Sprintf("👥 *عدد البالغين*\n\nالتاريخ: %s 🎯\n\nكم عدد *البالغين* (12 سنة فما فوق) الذين سينضمون؟\n\nالرجاء إرسال الرقم:\n*أمثلة:* 2, 4, 6", date)
	}
	return fmt.Sprintf("👥 *Number of Adults*\n\nDate: %s 🎯\n\nHow many *adults* (12 years and above) will be joining?\n\nPlease send the number:\n*Examples:* 2, 4, 6", date)
}

func (c Catalog) AskChildren(lang models.Language, adults int) string {
	if lang == models.LangArabic {
		return fmt.Sprintf("👶 *عدد الأطفال*\n\nالبالغين: %d\n\nكم عدد *الأطفال* (أقل من 12 سنة) الذين سينضمون؟\n\nالرجاء إرسال الرقم:\n*أمثلة:* 0, 1, 2\n\nإذا لم يكن هناك أطفال، أرسل فقط: 0", adults)
	}
	return fmt.Sprintf("👶 *Number of Children*\n\nAdults: %d\n\nHow many *children* (below 12 years) will be joining?\n\nPlease send the number:\n*Examples:* 0, 1, 2\n\nIf no children, just send: 0", adults)
}

func (c Catalog) AskInfants(lang models.Language) string {
	if lang == models.LangArabic {
		return "🍼 *عدد الرضع*\n\nكم عدد *الرضع* (أقل من سنتين)؟ يسافر الرضع مجاناً.\n\nالرجاء إرسال الرقم:\n*أمثلة:* 0, 1"
	}
	return "🍼 *Number of Infants*\n\nHow many *infants* (under 2 years)? Infants travel free.\n\nPlease send the number:\n*Examples:* 0, 1"
}

func (c Catalog) AskRequests(lang models.Language) string {
	if lang == models.LangArabic {
		return "📝 *طلبات خاصة*\n\nهل لديك أي طلبات خاصة؟ (وجبات، مقاعد، مناسبة)\n\nأرسل - إذا لم يكن هناك شيء."
	}
	return "📝 *Special Requests*\n\nAny special requests? (meals, seating, occasion)\n\nSend - if none."
}

// Confirmation renders the final booking summary. The saved form is used
// when the row write succeeded; the received form when it failed and the
// team will follow up manually.
func (c Catalog) Confirmation(lang models.Language, sess *models.Session, price string, saved bool) string {
	if lang == models.LangArabic {
		if !saved {
			return fmt.Sprintf("📝 *تم استلام الحجز!*\n\nشكراً %s! لقد استلمنا طلب حجزك. 🐬\n\nسيتصل بك فريقنا خلال ساعة واحدة للتأكيد. 📞", sess.Name)
		}
		return fmt.Sprintf("🎉 *تم تأكيد الحجز!* ✅\n\nشكراً %s! تم حجز رحلتك بنجاح. 🐬\n\n📋 *تفاصيل الحجز:*\n👤 الاسم: %s\n📞 الاتصال: %s\n🚤 الرحلة: %s\n👥 الضيوف: %d إجمالاً\n   • %d بالغين\n   • %d أطفال\n📅 التاريخ: %s\n🕒 الوقت: %s\n💳 الدفع: %s\n\n💰 *المجموع: %s ريال عماني*\n\nسيتصل بك فريقنا خلال ساعة واحدة لتأكيد التفاصيل. ⏰\nللمساعدة الفورية: %s 📞\n\nاستعد لمغامرة بحرية رائعة! 🌊",
			sess.Name, sess.Name, sess.Contact, c.tripDisplay(lang, sess.TripType), sess.TotalGuests(), sess.Adults, sess.Children,
			sess.BookingDate, orDash(sess.BookingTime), orDash(sess.PaymentMethod), price, c.v.ContactPhone)
	}
	if !saved {
		return fmt.Sprintf("📝 *Booking Received!*\n\nThank you %s! We've received your booking request. 🐬\n\nOur team will contact you within 1 hour to confirm. 📞", sess.Name)
	}
	return fmt.Sprintf("🎉 *Booking Confirmed!* ✅\n\nThank you %s! Your trip has been booked successfully. 🐬\n\n📋 *Booking Details:*\n👤 Name: %s\n📞 Contact: %s\n🚤 Trip: %s\n👥 Guests: %d total\n   • %d adults\n   • %d children\n📅 Date: %s\n🕒 Time: %s\n💳 Payment: %s\n\n💰 *Total: %s OMR*\n\nOur team will contact you within 1 hour to confirm details. ⏰\nFor immediate assistance: %s 📞\n\nGet ready for an amazing sea adventure! 🌊",
		sess.Name, sess.Name, sess.Contact, sess.TripType, sess.TotalGuests(), sess.Adults, sess.Children,
		sess.BookingDate, orDash(sess.BookingTime), orDash(sess.PaymentMethod), price, c.v.ContactPhone)
}

// NoCapacity tells the user every type is full for their date and that
// the flow starts over.
func (c Catalog) NoCapacity(lang models.Language, date string) string {
	if lang == models.LangArabic {
		return fmt.Sprintf("😔 عذراً، جميع الرحلات ممتلئة بتاريخ %s.\n\nلنجرب تاريخاً آخر! الرجاء إرسال *الاسم الكامل* للبدء من جديد.", date)
	}
	return fmt.Sprintf("😔 Sorry, all trips are fully booked on %s.\n\nLet's try another date! Please send your *Full Name* to start again.", date)
}

func (c Catalog) InvalidChoice(lang models.Language) string {
	if lang == models.LangArabic {
		return "عذراً، لم أفهم هذا الخيار. الرجاء الاختيار من القائمة. 📋"
	}
	return "Sorry, I didn't understand that option. Please select from the menu. 📋"
}

// TripInfo renders the detail card for one trip's menu row.
func (c Catalog) TripInfo(lang models.Language, t config.TripOption) string {
	childLine := c.childPolicyLine(lang)
	if lang == models.LangArabic {
		return fmt.Sprintf("%s 🌊\n\n*%s ريال عماني للبالغ*\n%s\n\n*المشمول:*\n• مرشد بحري خبير 🧭\n• معدات السلامة 🦺\n• المرطبات والمياه 🥤\n• فرص التصوير 📸\n\nللحجز اختر *احجز الآن* من القائمة. 📅",
			t.TitleAR, trimFloat(t.BasePrice), childLine)
	}
	return fmt.Sprintf("*%s* 🌊\n\n*%s OMR per adult*\n%s\n\n*What's included:*\n• Expert marine guide 🧭\n• Safety equipment & life jackets 🦺\n• Refreshments & bottled water 🥤\n• Photography opportunities 📸\n\nTo reserve, pick *Book Now* from the menu. 📅",
		t.TitleEN, trimFloat(t.BasePrice), childLine)
}

// InfoReply renders the canned answer for an informational topic.
func (c Catalog) InfoReply(lang models.Language, topic string) string {
	switch topic {
	case topicPricing:
		return c.pricingInfo(lang)
	case topicLocation:
		return c.locationInfo(lang)
	case topicSchedule:
		return c.scheduleInfo(lang)
	case topicContact:
		return c.contactInfo(lang)
	}
	return c.InvalidChoice(lang)
}

func (c Catalog) pricingInfo(lang models.Language) string {
	var b strings.Builder
	if lang == models.LangArabic {
		b.WriteString("💰 *أسعار الرحلات والباقات* 💵\n\n")
		for _, t := range c.v.Trips {
			fmt.Fprintf(&b, "• *%s:* %s ريال عماني للبالغ\n", t.TitleAR, trimFloat(t.BasePrice))
		}
		b.WriteString("\n👨‍👩‍👧‍👦 *عروض خاصة:*\n")
		b.WriteString("• " + c.childPolicyLine(lang) + "\n")
		fmt.Fprintf(&b, "• مجموعة %d+ أشخاص: خصم %d٪", c.v.GroupDiscountMin, int(c.v.GroupDiscountRate*100))
		return b.String()
	}
	b.WriteString("💰 *Trip Prices & Packages* 💵\n\n")
	for _, t := range c.v.Trips {
		fmt.Fprintf(&b, "• *%s:* %s OMR per adult\n", t.TitleEN, trimFloat(t.BasePrice))
	}
	b.WriteString("\n👨‍👩‍👧‍👦 *Special Offers:*\n")
	b.WriteString("• " + c.childPolicyLine(lang) + "\n")
	fmt.Fprintf(&b, "• Group of %d+ people: %d%% discount", c.v.GroupDiscountMin, int(c.v.GroupDiscountRate*100))
	return b.String()
}

func (c Catalog) childPolicyLine(lang models.Language) string {
	if c.v.ChildPriceFactor < 1 {
		pct := int((1 - c.v.ChildPriceFactor) * 100)
		if lang == models.LangArabic {
			return fmt.Sprintf("الأطفال تحت 12 سنة: خصم %d٪", pct)
		}
		return fmt.Sprintf("Children under 12: %d%% discount", pct)
	}
	if lang == models.LangArabic {
		return "الرضع تحت سنتين: مجاناً"
	}
	return "Infants under 2 travel free"
}

func (c Catalog) locationInfo(lang models.Language) string {
	if lang == models.LangArabic {
		return fmt.Sprintf("📍 *موقعنا والتوجيهات* 🗺️\n\n🏖️ *%s*\nمارينا بندر الروضة\nمسقط، سلطنة عمان\n\n🚗 *مواقف سيارات:* متوفرة في المارينا\n⏰ *ساعات العمل:* 7:00 صباحاً - 7:00 مساءً يومياً", c.v.BusinessAR)
	}
	return fmt.Sprintf("📍 *Our Location & Directions* 🗺️\n\n🏖️ *%s*\nMarina Bandar Al Rowdha\nMuscat, Sultanate of Oman\n\n🚗 *Parking:* Available at marina\n⏰ *Opening Hours:* 7:00 AM - 7:00 PM Daily", c.v.BusinessEN)
}

func (c Catalog) scheduleInfo(lang models.Language) string {
	if lang == models.LangArabic {
		return "🕒 *جدول الرحلات والمواعيد:* ⏰\n\n🌅 *جولات الصباح:* 8:00، 9:00، 10:00 صباحاً\n🌇 *جولات الظهيرة:* 2:00، 4:00، 6:00 مساءً\n\n📅 *يوصى بالحجز المسبق!*"
	}
	return "🕒 *Trip Schedule & Timings:* ⏰\n\n🌅 *Morning Sessions:* 8:00 AM, 9:00 AM, 10:00 AM\n🌇 *Afternoon Sessions:* 2:00 PM, 4:00 PM, 6:00 PM\n\n📅 *Advanced booking recommended!*"
}

func (c Catalog) contactInfo(lang models.Language) string {
	if lang == models.LangArabic {
		return fmt.Sprintf("📞 *اتصل بـ%s:* 📱\n\n*هاتف:* %s\n\n⏰ *ساعات خدمة العملاء:*\n7:00 صباحاً - 7:00 مساءً يومياً\n\n📍 *زورنا:*\nمارينا بندر الروضة، مسقط", c.v.BusinessAR, c.v.ContactPhone)
	}
	return fmt.Sprintf("📞 *Contact %s:* 📱\n\n*Phone:* %s\n\n⏰ *Customer Service Hours:*\n7:00 AM - 7:00 PM Daily\n\n📍 *Visit Us:*\nMarina Bandar Al Rowdha, Muscat", c.v.BusinessEN, c.v.ContactPhone)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
