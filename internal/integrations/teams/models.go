package teams

import "time"

// graphDateTimeLayout формат dateTime в Graph API (без смещения, зона передаётся отдельно)
const graphDateTimeLayout = "2006-01-02T15:04:05"

// Attendee участник встречи
type Attendee struct {
	Name  string
	Email string
}

// MeetingRequest параметры создаваемой встречи.
// Start и End трактуются как время на стене в зоне TimeZone.
type MeetingRequest struct {
	Subject   string
	BodyHTML  string
	Start     time.Time
	End       time.Time
	TimeZone  string
	Location  string
	Attendees []Attendee
}

// Meeting созданное событие календаря с Teams-ссылкой
type Meeting struct {
	EventID string
	JoinURL string
	WebLink string
}

// CalendarEvent событие календаря организатора
type CalendarEvent struct {
	ID       string
	Subject  string
	Start    time.Time // UTC
	End      time.Time // UTC
	IsAllDay bool
	ShowAs   string
}

// IsBusy возвращает true, если событие занимает время организатора
func (e CalendarEvent) IsBusy() bool {
	return e.ShowAs != "free"
}

type graphDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type graphEmailAddress struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

type graphAttendee struct {
	EmailAddress graphEmailAddress `json:"emailAddress"`
	Type         string            `json:"type"`
}

type graphBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type graphLocation struct {
	DisplayName string `json:"displayName"`
}

type graphEventRequest struct {
	Subject               string          `json:"subject"`
	Body                  graphBody       `json:"body"`
	Start                 graphDateTime   `json:"start"`
	End                   graphDateTime   `json:"end"`
	Location              graphLocation   `json:"location"`
	Attendees             []graphAttendee `json:"attendees"`
	IsOnlineMeeting       bool            `json:"isOnlineMeeting"`
	OnlineMeetingProvider string          `json:"onlineMeetingProvider"`
	AllowNewTimeProposals bool            `json:"allowNewTimeProposals"`
}

type graphEventResponse struct {
	ID            string `json:"id"`
	WebLink       string `json:"webLink"`
	OnlineMeeting *struct {
		JoinURL string `json:"joinUrl"`
	} `json:"onlineMeeting"`
}

type graphCalendarEvent struct {
	ID       string        `json:"id"`
	Subject  string        `json:"subject"`
	Start    graphDateTime `json:"start"`
	End      graphDateTime `json:"end"`
	IsAllDay bool          `json:"isAllDay"`
	ShowAs   string        `json:"showAs"`
}

type graphCalendarView struct {
	Value    []graphCalendarEvent `json:"value"`
	NextLink string               `json:"@odata.nextLink"`
}
