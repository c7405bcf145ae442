package campus

import (
	"campus-route-finder/internal/domain"
	"campus-route-finder/internal/platform/httpx"
	"campus-route-finder/internal/platform/obs"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	buildingsPath = "/domains/mobile/location/v2/buildings"
	userinfoPath  = "/openid-userinfo/v1/userinfo"
	enrolledPath  = "/domains/legacy/academic/registration/enrolled_classes/v1/byuid/%d/%s"

	idClaim = "http://byu.edu/claims/client_byu_id"
)

// Client talks to the university's REST APIs with the student's bearer token.
// It serves as the building source, the identity provider and the schedule
// provider of the CLI.
type Client struct {
	http     *httpx.Retrier
	baseURL  string
	termCode string
}

func NewClient(baseURL, termCode string) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("campus api base url is empty")
	}
	if strings.TrimSpace(termCode) == "" {
		return nil, errors.New("campus term code is empty")
	}

	return &Client{
		http:     httpx.NewRetrier(15 * time.Second),
		baseURL:  strings.TrimRight(baseURL, "/"),
		termCode: termCode,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, token, path string, out any) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("bearer token is empty")
	}

	resp, err := c.http.Do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decode response: %w", path, err)
	}
	return nil
}

// FetchBuildings lists every campus building with its coordinates.
// Entries without an acronym are skipped.
func (c *Client) FetchBuildings(ctx context.Context, token string) (_ []domain.Building, err error) {
	defer obs.Time(ctx, "campus.FetchBuildings")(&err)

	var raw []json.RawMessage
	if err := c.getJSON(ctx, token, buildingsPath, &raw); err != nil {
		return nil, fmt.Errorf("fetch buildings: %w", err)
	}

	out := make([]domain.Building, 0, len(raw))
	for i, item := range raw {
		b, err := decodeBuilding(item)
		if err != nil {
			return nil, fmt.Errorf("fetch buildings: item %d: %w", i+1, err)
		}
		if b.Acronym == "" {
			continue
		}
		out = append(out, b)
	}

	return out, nil
}

// Coordinates arrive as numbers or as quoted numbers depending on the record.
func decodeBuilding(item json.RawMessage) (domain.Building, error) {
	var v struct {
		Acronym   string          `json:"acronym"`
		Name      string          `json:"name"`
		Latitude  json.RawMessage `json:"latitude"`
		Longitude json.RawMessage `json:"longitude"`
	}
	if err := json.Unmarshal(item, &v); err != nil {
		return domain.Building{}, err
	}

	lat, err := number(v.Latitude)
	if err != nil {
		return domain.Building{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := number(v.Longitude)
	if err != nil {
		return domain.Building{}, fmt.Errorf("longitude: %w", err)
	}

	return domain.Building{
		Acronym:     strings.ToUpper(strings.TrimSpace(v.Acronym)),
		Name:        strings.TrimSpace(v.Name),
		Coordinates: domain.Coordinates{Lat: lat, Lon: lon},
	}, nil
}

func number(raw json.RawMessage) (float64, error) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// UserFromToken resolves the token through the OpenID userinfo endpoint.
// Goals start unset; the stored user record is authoritative for them.
func (c *Client) UserFromToken(ctx context.Context, token string) (_ *domain.User, err error) {
	defer obs.Time(ctx, "campus.UserFromToken")(&err)

	var claims map[string]any
	if err := c.getJSON(ctx, token, userinfoPath+"?schema=openid", &claims); err != nil {
		return nil, fmt.Errorf("user from token: %w", err)
	}

	id, err := parseID(claims[idClaim])
	if err != nil {
		return nil, fmt.Errorf("user from token: claim %s: %w", idClaim, err)
	}

	first, _ := claims["given_name"].(string)
	last, _ := claims["family_name"].(string)

	return &domain.User{ID: id, FirstName: first, LastName: last, Token: token}, nil
}

func parseID(v any) (int64, error) {
	switch id := v.(type) {
	case string:
		return strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	case float64:
		return int64(id), nil
	case nil:
		return 0, errors.New("missing")
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

type enrolledResponse struct {
	Service struct {
		Response struct {
			ClassList []struct {
				CourseTitle string `json:"course_title"`
				Schedule    []struct {
					Building   string `json:"building"`
					DaysTaught string `json:"days_taught"`
					BeginTime  string `json:"begin_time"`
				} `json:"schedule"`
			} `json:"class_list"`
		} `json:"response"`
	} `json:"EnrolledClassesService"`
}

// EnrolledClasses returns the first scheduled meeting of every class the user
// is enrolled in for the configured term. Classes without a schedule or a
// building (online sections) are left out.
func (c *Client) EnrolledClasses(ctx context.Context, u domain.User) (_ []domain.ClassMeeting, err error) {
	defer obs.Time(ctx, "campus.EnrolledClasses")(&err)

	var res enrolledResponse
	if err := c.getJSON(ctx, u.Token, fmt.Sprintf(enrolledPath, u.ID, c.termCode), &res); err != nil {
		return nil, fmt.Errorf("enrolled classes for %d: %w", u.ID, err)
	}

	list := res.Service.Response.ClassList
	out := make([]domain.ClassMeeting, 0, len(list))
	for _, cl := range list {
		if len(cl.Schedule) == 0 {
			continue
		}
		s := cl.Schedule[0]
		if strings.TrimSpace(s.Building) == "" {
			continue
		}
		out = append(out, domain.ClassMeeting{
			Title:      cl.CourseTitle,
			Building:   strings.TrimSpace(s.Building),
			DaysTaught: strings.TrimSpace(s.DaysTaught),
			StartTime:  strings.TrimSpace(s.BeginTime),
		})
	}

	return out, nil
}
