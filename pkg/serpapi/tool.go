package serpapi

import (
	"context"
	"encoding/json"

	// Packages
	client "github.com/mutablelogic/go-client"
	param "github.com/mutablelogic/go-toolserver/pkg/param"
	tool "github.com/mutablelogic/go-toolserver/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Label tables for enumerated arguments
var (
	FlightTypes = param.NewLabels(2,
		param.Label{Label: "round_trip", Code: 1},
		param.Label{Label: "one_way", Code: 2},
	)
	TravelClasses = param.NewLabels(1,
		param.Label{Label: "economy", Code: 1},
		param.Label{Label: "premium_economy", Code: 2},
		param.Label{Label: "business", Code: 3},
		param.Label{Label: "first", Code: 4},
	)
	FlightSortOrders = param.NewLabels(1,
		param.Label{Label: "top_flights", Code: 1},
		param.Label{Label: "price", Code: 2},
		param.Label{Label: "departure_time", Code: 3},
		param.Label{Label: "arrival_time", Code: 4},
		param.Label{Label: "duration", Code: 5},
	)
	Stops = param.NewLabels(0,
		param.Label{Label: "any", Code: 0},
		param.Label{Label: "nonstop", Code: 1},
		param.Label{Label: "one_stop", Code: 2},
		param.Label{Label: "two_stops", Code: 3},
	)
	HotelSortOrders = param.NewLabels(3,
		param.Label{Label: "lowest_price", Code: 3},
		param.Label{Label: "highest_rating", Code: 8},
		param.Label{Label: "most_reviews", Code: 13},
	)
	HotelRatings = param.NewLabels(nil,
		param.Label{Label: "3.5+", Code: 7},
		param.Label{Label: "4.0+", Code: 8},
		param.Label{Label: "4.5+", Code: 9},
	)
	HotelClasses = param.NewLabels(nil,
		param.Label{Label: "2", Code: 2},
		param.Label{Label: "3", Code: 3},
		param.Label{Label: "4", Code: 4},
		param.Label{Label: "5", Code: 5},
	)
)

var (
	query    = param.String("query", "Query to search for", param.Required())
	location = param.String("location", "Location")
	currency = param.String("currency", "Currency", param.Default("USD"))
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the search tools, sharing one client
func NewTools(apiKey string, opts ...client.ClientOpt) ([]tool.Tool, error) {
	client, err := New(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return client.Tools(), nil
}

// Tools returns the tools backed by this client
func (c *Client) Tools() []tool.Tool {
	return []tool.Tool{
		tool.New("get-events", "Get events from SerpApi",
			func(ctx context.Context, args param.Values) (json.RawMessage, error) {
				return c.Events(ctx, newEventsRequest(args))
			},
			query,
			param.Integer("page", "Page number", param.Default(1), param.Range(1, maxEventsPage)),
		),
		tool.New("get-finance-data", "Get finance data from SerpApi",
			search(c.Finance), query,
		),
		tool.New("get-flights", "Get flights from SerpApi",
			func(ctx context.Context, args param.Values) (json.RawMessage, error) {
				return c.Flights(ctx, newFlightsRequest(args))
			},
			param.String("departure_id", "Departure ID", param.Required()),
			param.String("arrival_id", "Arrival ID", param.Required()),
			param.String("outbound_date", "Outbound date YYYY-MM-DD", param.Required(), param.Date()),
			param.String("return_date", "Return date YYYY-MM-DD", param.Date()),
			currency,
			param.String("flight_type", "Flight type", param.Default("one_way"), param.WithLabels(FlightTypes)),
			param.String("travel_class", "Travel class", param.Default("economy"), param.WithLabels(TravelClasses)),
			param.Integer("adults", "Number of adults", param.Default(1), param.Min(1)),
			param.Integer("children", "Number of children", param.Min(0)),
			param.Integer("infants_in_seat", "Number of infants in seat", param.Min(0)),
			param.Integer("infants_on_lap", "Number of infants on lap", param.Min(0)),
			param.String("sort_by", "Sort by", param.Default("top_flights"), param.WithLabels(FlightSortOrders)),
			param.String("stops", "Number of stops", param.Default("any"), param.WithLabels(Stops)),
			param.Integer("bags", "Number of bags", param.Min(0)),
			param.Number("max_price", "Maximum price", param.Min(0)),
		),
		tool.New("get-hotels", "Get hotels from SerpApi",
			func(ctx context.Context, args param.Values) (json.RawMessage, error) {
				return c.Hotels(ctx, newHotelsRequest(args))
			},
			query,
			param.String("check_in_date", "Check in date YYYY-MM-DD", param.Required(), param.Date()),
			param.String("check_out_date", "Check out date YYYY-MM-DD", param.Required(), param.Date()),
			param.Integer("adults", "Number of adults", param.Default(2), param.Min(1)),
			currency,
			param.Integer("children", "Number of children", param.Min(0)),
			param.String("children_ages", "Children ages"),
			param.String("sort_by", "Sort by", param.Default("lowest_price"), param.WithLabels(HotelSortOrders)),
			param.Number("min_price", "Minimum price", param.Min(0)),
			param.Number("max_price", "Maximum price", param.Min(0)),
			param.String("rating", "Rating", param.WithLabels(HotelRatings)),
			param.String("hotel_class", "Hotel class", param.WithLabels(HotelClasses)),
			param.Bool("free_cancellation", "Free cancellation"),
			param.Bool("vacation_rentals", "Vacation rentals"),
			param.Integer("bedrooms", "Number of bedrooms", param.Min(0)),
			param.Integer("bathrooms", "Number of bathrooms", param.Min(0)),
		),
		tool.New("get-jobs", "Get jobs from SerpApi",
			search(c.Jobs), query, location,
		),
		tool.New("get-places", "Get places from SerpApi",
			search(c.Places), query, location,
		),
		tool.New("get-shopping", "Get shopping from SerpApi",
			search(c.Shopping), query,
		),
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func search(fn func(context.Context, *SearchRequest) (json.RawMessage, error)) tool.RunFunc {
	return func(ctx context.Context, args param.Values) (json.RawMessage, error) {
		return fn(ctx, newSearchRequest(args))
	}
}
