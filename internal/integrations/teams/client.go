package teams

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	// GraphScope права приложения для client credentials flow
	GraphScope = "https://graph.microsoft.com/.default"

	defaultTokenURL = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
	defaultBaseURL  = "https://graph.microsoft.com/v1.0"

	// maxCalendarPages ограничивает обход @odata.nextLink
	maxCalendarPages = 10
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config параметры подключения к Microsoft Graph
type Config struct {
	TenantID       string
	ClientID       string
	ClientSecret   string
	OrganizerEmail string
	BaseURL        string // пусто = https://graph.microsoft.com/v1.0
	TokenURL       string // пусто = login.microsoftonline.com для TenantID
	Timeout        time.Duration
}

// Client клиент Microsoft Graph для создания Teams-встреч от имени организатора
type Client struct {
	baseURL    string
	organizer  string
	httpClient *http.Client
	log        Logger
}

// NewClient создает клиент с токеном приложения (client credentials).
// Токен кэшируется и обновляется автоматически.
func NewClient(cfg Config, log Logger) *Client {
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = fmt.Sprintf(defaultTokenURL, cfg.TenantID)
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	credentials := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
		Scopes:       []string{GraphScope},
	}

	// HTTP клиент для запроса токена с тем же таймаутом
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: cfg.Timeout})
	httpClient := credentials.Client(tokenCtx)
	httpClient.Timeout = cfg.Timeout

	return &Client{
		baseURL:    baseURL,
		organizer:  cfg.OrganizerEmail,
		httpClient: httpClient,
		log:        log,
	}
}

// CreateMeeting создает событие в календаре организатора с онлайн-встречей Teams
func (c *Client) CreateMeeting(ctx context.Context, req MeetingRequest) (*Meeting, error) {
	endpoint := fmt.Sprintf("%s/users/%s/calendar/events", c.baseURL, url.PathEscape(c.organizer))

	location := req.Location
	if location == "" {
		location = "Microsoft Teams Meeting"
	}

	attendees := make([]graphAttendee, 0, len(req.Attendees))
	for _, a := range req.Attendees {
		attendees = append(attendees, graphAttendee{
			EmailAddress: graphEmailAddress{Address: a.Email, Name: a.Name},
			Type:         "required",
		})
	}

	payload := graphEventRequest{
		Subject:               req.Subject,
		Body:                  graphBody{ContentType: "HTML", Content: req.BodyHTML},
		Start:                 graphDateTime{DateTime: req.Start.Format(graphDateTimeLayout), TimeZone: req.TimeZone},
		End:                   graphDateTime{DateTime: req.End.Format(graphDateTimeLayout), TimeZone: req.TimeZone},
		Location:              graphLocation{DisplayName: location},
		Attendees:             attendees,
		IsOnlineMeeting:       true,
		OnlineMeetingProvider: "teamsForBusiness",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var event graphEventResponse
	if err := c.do(httpReq, http.StatusCreated, &event); err != nil {
		return nil, err
	}

	if event.OnlineMeeting == nil || event.OnlineMeeting.JoinURL == "" {
		return nil, fmt.Errorf("%w: event id=%s", ErrNoJoinURL, event.ID)
	}

	c.log.Info("Teams meeting created: event_id=%s subject=%q", event.ID, req.Subject)

	return &Meeting{
		EventID: event.ID,
		JoinURL: event.OnlineMeeting.JoinURL,
		WebLink: event.WebLink,
	}, nil
}

// ListCalendarEvents возвращает события календаря организатора в интервале [start, end)
func (c *Client) ListCalendarEvents(ctx context.Context, start, end time.Time) ([]CalendarEvent, error) {
	query := url.Values{}
	query.Set("startDateTime", start.UTC().Format(time.RFC3339))
	query.Set("endDateTime", end.UTC().Format(time.RFC3339))
	query.Set("$select", "id,subject,start,end,isAllDay,showAs")
	query.Set("$orderby", "start/dateTime")

	next := fmt.Sprintf("%s/users/%s/calendarView?%s", c.baseURL, url.PathEscape(c.organizer), query.Encode())

	events := make([]CalendarEvent, 0)
	for page := 0; next != "" && page < maxCalendarPages; page++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, next, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
		}
		httpReq.Header.Set("Prefer", `outlook.timezone="UTC"`)

		var view graphCalendarView
		if err := c.do(httpReq, http.StatusOK, &view); err != nil {
			return nil, err
		}

		for _, ev := range view.Value {
			converted, err := convertEvent(ev)
			if err != nil {
				return nil, err
			}
			events = append(events, converted)
		}
		next = view.NextLink
	}

	return events, nil
}

// do выполняет запрос и декодирует ответ с ожидаемым статусом в out
func (c *Client) do(req *http.Request, expectedStatus int, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return fmt.Errorf("%w: token request rejected: %v", ErrUnauthorized, err)
		}
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case expectedStatus, http.StatusOK:
		// Продолжаем обработку
	case http.StatusUnauthorized, http.StatusForbidden:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", ErrUnauthorized, resp.StatusCode, string(body))
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

func convertEvent(ev graphCalendarEvent) (CalendarEvent, error) {
	start, err := parseGraphTime(ev.Start)
	if err != nil {
		return CalendarEvent{}, err
	}
	end, err := parseGraphTime(ev.End)
	if err != nil {
		return CalendarEvent{}, err
	}
	return CalendarEvent{
		ID:       ev.ID,
		Subject:  ev.Subject,
		Start:    start,
		End:      end,
		IsAllDay: ev.IsAllDay,
		ShowAs:   ev.ShowAs,
	}, nil
}

// parseGraphTime разбирает dateTime вида 2025-10-15T15:00:00.0000000 в зоне события
func parseGraphTime(dt graphDateTime) (time.Time, error) {
	loc := time.UTC
	if dt.TimeZone != "" && dt.TimeZone != "UTC" {
		l, err := time.LoadLocation(dt.TimeZone)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: unknown time zone %q", ErrInvalidResponse, dt.TimeZone)
		}
		loc = l
	}

	t, err := time.ParseInLocation("2006-01-02T15:04:05.9999999", dt.DateTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad dateTime %q", ErrInvalidResponse, dt.DateTime)
	}
	return t.UTC(), nil
}
