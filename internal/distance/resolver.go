package distance

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// Метки нерешённых расстояний. Во всех трёх случаях метры равны нулю,
// что означает неизвестное расстояние, а не нулевой путь.
const (
	LabelNoAPIKey = "API Key not configured"
	LabelNoRoute  = "No route found"
	LabelError    = "Error calculating"
)

// Distance - расстояние до поставщика по автомобильному маршруту.
type Distance struct {
	Label  string
	Meters int
}

// Resolver разрешает расстояние между двумя адресами. Резолвер никогда
// не возвращает ошибку: любая неудача кодируется меткой и нулём метров.
type Resolver interface {
	Resolve(ctx context.Context, origin, destination string) Distance
}

// GoogleResolver - реализация Resolver поверх Google Directions API.
type GoogleResolver struct {
	client *resty.Client
	apiKey string
	url    string
}

// NewGoogleResolver создаёт новый экземпляр GoogleResolver.
func NewGoogleResolver(apiKey, url string) *GoogleResolver {
	return &GoogleResolver{
		client: resty.New().SetTimeout(10 * time.Second),
		apiKey: apiKey,
		url:    url,
	}
}

// Resolve возвращает расстояние по автомобильному маршруту от origin до destination.
func (r *GoogleResolver) Resolve(ctx context.Context, origin, destination string) Distance {
	if r.apiKey == "" {
		return Distance{Label: LabelNoAPIKey}
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"origin":      origin,
			"destination": destination,
			"mode":        "driving",
			"key":         r.apiKey,
		}).
		Get(r.url)
	if err != nil {
		return Distance{Label: LabelError}
	}
	if resp.StatusCode() != http.StatusOK {
		return Distance{Label: LabelError}
	}

	body := resp.String()
	switch gjson.Get(body, "status").String() {
	case "OK":
		leg := gjson.Get(body, "routes.0.legs.0.distance")
		if !leg.Exists() {
			return Distance{Label: LabelNoRoute}
		}
		return Distance{
			Label:  leg.Get("text").String(),
			Meters: int(leg.Get("value").Int()),
		}
	case "ZERO_RESULTS":
		return Distance{Label: LabelNoRoute}
	default:
		return Distance{Label: LabelError}
	}
}
