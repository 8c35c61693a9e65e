package meetings

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
	"github.com/m04kA/SMC-TeamsScheduler/internal/integrations/teams"
)

// MeetingLocation отображаемое место встречи
const MeetingLocation = "Microsoft Teams Meeting"

// BuildMeetingRequest собирает запрос на создание встречи по бронированию.
// Время встречи - время на стене в зоне loc.
func BuildMeetingRequest(booking *domain.Booking, timeZone string, loc *time.Location) teams.MeetingRequest {
	if loc == nil {
		loc = time.UTC
	}
	if booking.TimeZone != "" && booking.TimeZone != timeZone {
		if bookingLoc, err := time.LoadLocation(booking.TimeZone); err == nil {
			timeZone, loc = booking.TimeZone, bookingLoc
		}
	}

	return teams.MeetingRequest{
		Subject:  fmt.Sprintf("%s Training Session - %s", booking.Platform, booking.Attendee.Name),
		BodyHTML: meetingBody(booking),
		Start:    booking.StartTime.On(booking.Date, loc),
		End:      booking.EndTime.On(booking.Date, loc),
		TimeZone: timeZone,
		Location: MeetingLocation,
		Attendees: []teams.Attendee{{
			Name:  booking.Attendee.Name,
			Email: booking.Attendee.Email,
		}},
	}
}

func meetingBody(booking *domain.Booking) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<h2>%s Training Session</h2>", html.EscapeString(booking.Platform))
	fmt.Fprintf(&b, "<p><strong>Duration:</strong> %d minutes</p>", booking.DurationMinutes)
	fmt.Fprintf(&b, "<p><strong>Attendee:</strong> %s (%s)</p>",
		html.EscapeString(booking.Attendee.Name), html.EscapeString(booking.Attendee.Email))

	if booking.Attendee.Company != nil && *booking.Attendee.Company != "" {
		fmt.Fprintf(&b, "<p><strong>Company:</strong> %s</p>", html.EscapeString(*booking.Attendee.Company))
	}
	if booking.Attendee.Phone != nil && *booking.Attendee.Phone != "" {
		fmt.Fprintf(&b, "<p><strong>Phone:</strong> %s</p>", html.EscapeString(*booking.Attendee.Phone))
	}

	b.WriteString("<p>This is an automated training session booking.</p>")
	return b.String()
}
