package whatsapp

import "strconv"

// Cloud API message payloads. Field names follow the Graph API wire
// format exactly; only the subset this bot sends is modeled.

const (
	maxHeaderLen    = 60
	maxBodyLen      = 1024
	maxButtonLen    = 20
	maxSectionTitle = 24
	maxRowID        = 200
	maxRowTitle     = 24
	maxRowDesc      = 72
	maxSections     = 10
	maxRows         = 10
)

type outboundMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	RecipientType    string       `json:"recipient_type"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             *textBody    `json:"text,omitempty"`
	Interactive      *Interactive `json:"interactive,omitempty"`
}

type textBody struct {
	Body string `json:"body"`
}

// Interactive is a list-menu payload.
type Interactive struct {
	Type   string      `json:"type"`
	Header *ListHeader `json:"header,omitempty"`
	Body   ListBody    `json:"body"`
	Action ListAction  `json:"action"`
}

type ListHeader struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type ListBody struct {
	Text string `json:"text"`
}

type ListAction struct {
	Button   string        `json:"button"`
	Sections []ListSection `json:"sections"`
}

type ListSection struct {
	Title string    `json:"title"`
	Rows  []ListRow `json:"rows"`
}

type ListRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// NewList builds a list payload from a header, body, button label and
// sections. Callers get back something already within API limits.
func NewList(header, body, button string, sections []ListSection) *Interactive {
	in := &Interactive{
		Type:   "list",
		Header: &ListHeader{Type: "text", Text: header},
		Body:   ListBody{Text: body},
		Action: ListAction{Button: button, Sections: sections},
	}
	return clampList(in)
}

// clampList trims every field of a list payload to the API's length and
// count limits. Returns nil when nothing valid remains, which callers
// treat as "fall back to plain text".
func clampList(in *Interactive) *Interactive {
	if in == nil || in.Type != "list" {
		return nil
	}
	out := &Interactive{
		Type: "list",
		Body: ListBody{Text: truncate(in.Body.Text, maxBodyLen)},
		Action: ListAction{
			Button: truncate(in.Action.Button, maxButtonLen),
		},
	}
	if out.Body.Text == "" {
		out.Body.Text = "Please select an option"
	}
	if out.Action.Button == "" {
		out.Action.Button = "Options"
	}
	if in.Header != nil && in.Header.Text != "" {
		out.Header = &ListHeader{Type: "text", Text: truncate(in.Header.Text, maxHeaderLen)}
	}

	for _, sec := range in.Action.Sections {
		if len(out.Action.Sections) == maxSections {
			break
		}
		cleaned := ListSection{Title: truncate(sec.Title, maxSectionTitle)}
		for _, row := range sec.Rows {
			if len(cleaned.Rows) == maxRows {
				break
			}
			if row.ID == "" || row.Title == "" {
				continue
			}
			cleaned.Rows = append(cleaned.Rows, ListRow{
				ID:          truncate(row.ID, maxRowID),
				Title:       truncate(row.Title, maxRowTitle),
				Description: truncate(row.Description, maxRowDesc),
			})
		}
		if len(cleaned.Rows) > 0 {
			out.Action.Sections = append(out.Action.Sections, cleaned)
		}
	}
	if len(out.Action.Sections) == 0 {
		return nil
	}
	return out
}

// FallbackText renders a list as a numbered plain-text menu for when the
// interactive payload cannot be delivered.
func FallbackText(in *Interactive) string {
	if in == nil {
		return ""
	}
	text := in.Body.Text
	n := 0
	for _, sec := range in.Action.Sections {
		if sec.Title != "" {
			text += "\n\n" + sec.Title + ":"
		}
		for _, row := range sec.Rows {
			n++
			text += "\n" + strconv.Itoa(n) + ". " + row.Title
		}
	}
	return text
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
