package serpapi

import (
	"net/url"
	"strconv"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
	param "github.com/mutablelogic/go-toolserver/pkg/param"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// SearchRequest is a query with an optional location
type SearchRequest struct {
	Query    string
	Location string
}

// EventsRequest is a query with a one-based page number
type EventsRequest struct {
	Query string
	Page  int64
}

// FlightsRequest holds the google_flights parameters. Enumerated fields
// hold upstream codes; counts of zero are not sent.
type FlightsRequest struct {
	DepartureID   string
	ArrivalID     string
	OutboundDate  string
	ReturnDate    string
	Currency      string
	Type          int64
	TravelClass   int64
	Adults        int64
	Children      int64
	InfantsInSeat int64
	InfantsOnLap  int64
	Bags          int64
	SortBy        int64
	Stops         int64
	MaxPrice      *float64
}

// HotelsRequest holds the google_hotels parameters. Nil fields and zero
// children are not sent.
type HotelsRequest struct {
	Query            string
	CheckInDate      string
	CheckOutDate     string
	Adults           int64
	Currency         string
	Children         int64
	ChildrenAges     string
	SortBy           int64
	MinPrice         *float64
	MaxPrice         *float64
	Rating           *int64
	HotelClass       *int64
	FreeCancellation *bool
	VacationRentals  *bool
	Bedrooms         *int64
	Bathrooms        *int64
}

const (
	eventsPerPage = 10
	maxEventsPage = 100
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func newSearchRequest(args param.Values) *SearchRequest {
	return &SearchRequest{
		Query:    args.String("query"),
		Location: args.String("location"),
	}
}

func newEventsRequest(args param.Values) *EventsRequest {
	return &EventsRequest{
		Query: args.String("query"),
		Page:  args.Int("page"),
	}
}

func newFlightsRequest(args param.Values) *FlightsRequest {
	return &FlightsRequest{
		DepartureID:   args.String("departure_id"),
		ArrivalID:     args.String("arrival_id"),
		OutboundDate:  args.String("outbound_date"),
		ReturnDate:    args.String("return_date"),
		Currency:      args.String("currency"),
		Type:          args.Int("flight_type"),
		TravelClass:   args.Int("travel_class"),
		Adults:        args.Int("adults"),
		Children:      args.Int("children"),
		InfantsInSeat: args.Int("infants_in_seat"),
		InfantsOnLap:  args.Int("infants_on_lap"),
		Bags:          args.Int("bags"),
		SortBy:        args.Int("sort_by"),
		Stops:         args.Int("stops"),
		MaxPrice:      floatPtr(args, "max_price"),
	}
}

func newHotelsRequest(args param.Values) *HotelsRequest {
	return &HotelsRequest{
		Query:            args.String("query"),
		CheckInDate:      args.String("check_in_date"),
		CheckOutDate:     args.String("check_out_date"),
		Adults:           args.Int("adults"),
		Currency:         args.String("currency"),
		Children:         args.Int("children"),
		ChildrenAges:     args.String("children_ages"),
		SortBy:           args.Int("sort_by"),
		MinPrice:         floatPtr(args, "min_price"),
		MaxPrice:         floatPtr(args, "max_price"),
		Rating:           intPtr(args, "rating"),
		HotelClass:       intPtr(args, "hotel_class"),
		FreeCancellation: boolPtr(args, "free_cancellation"),
		VacationRentals:  boolPtr(args, "vacation_rentals"),
		Bedrooms:         intPtr(args, "bedrooms"),
		Bathrooms:        intPtr(args, "bathrooms"),
	}
}

///////////////////////////////////////////////////////////////////////////////
// METHODS

func (r *SearchRequest) Values() url.Values {
	result := url.Values{}
	result.Set("q", r.Query)
	if r.Location != "" {
		result.Set("location", r.Location)
	}
	return result
}

// Values converts the page number to a result offset
func (r *EventsRequest) Values() url.Values {
	result := url.Values{}
	result.Set("q", r.Query)
	page := min(max(r.Page, 1), maxEventsPage)
	result.Set("start", strconv.FormatInt((page-1)*eventsPerPage, 10))
	return result
}

func (r *FlightsRequest) Values() url.Values {
	result := url.Values{}
	result.Set("departure_id", r.DepartureID)
	result.Set("arrival_id", r.ArrivalID)
	result.Set("outbound_date", r.OutboundDate)
	result.Set("currency", r.Currency)
	setInt(result, "type", r.Type)
	setInt(result, "travel_class", r.TravelClass)
	setInt(result, "adults", r.Adults)
	if r.ReturnDate != "" {
		result.Set("return_date", r.ReturnDate)
	}
	if r.Children > 0 {
		setInt(result, "children", r.Children)
	}
	if r.InfantsInSeat > 0 {
		setInt(result, "infants_in_seat", r.InfantsInSeat)
	}
	if r.InfantsOnLap > 0 {
		setInt(result, "infants_on_lap", r.InfantsOnLap)
	}
	setInt(result, "sort_by", r.SortBy)
	setInt(result, "stops", r.Stops)
	if r.Bags > 0 {
		setInt(result, "bags", r.Bags)
	}
	if r.MaxPrice != nil {
		setFloat(result, "max_price", *r.MaxPrice)
	}
	return result
}

func (r *HotelsRequest) Values() url.Values {
	result := url.Values{}
	result.Set("q", r.Query)
	result.Set("check_in_date", r.CheckInDate)
	result.Set("check_out_date", r.CheckOutDate)
	setInt(result, "adults", r.Adults)
	result.Set("currency", r.Currency)
	if r.Children > 0 {
		setInt(result, "children", r.Children)
	}
	if r.ChildrenAges != "" {
		result.Set("children_ages", r.ChildrenAges)
	}
	setInt(result, "sort_by", r.SortBy)
	if r.MinPrice != nil {
		setFloat(result, "min_price", *r.MinPrice)
	}
	if r.MaxPrice != nil {
		setFloat(result, "max_price", *r.MaxPrice)
	}
	if r.Rating != nil {
		setInt(result, "rating", *r.Rating)
	}
	if r.HotelClass != nil {
		setInt(result, "hotel_class", *r.HotelClass)
	}
	if r.FreeCancellation != nil {
		result.Set("free_cancellation", strconv.FormatBool(*r.FreeCancellation))
	}
	if r.VacationRentals != nil {
		result.Set("vacation_rentals", strconv.FormatBool(*r.VacationRentals))
	}
	if r.Bedrooms != nil {
		setInt(result, "bedrooms", *r.Bedrooms)
	}
	if r.Bathrooms != nil {
		setInt(result, "bathrooms", *r.Bathrooms)
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func setInt(values url.Values, key string, v int64) {
	values.Set(key, strconv.FormatInt(v, 10))
}

func setFloat(values url.Values, key string, v float64) {
	values.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
}

func floatPtr(args param.Values, name string) *float64 {
	if !args.Has(name) {
		return nil
	}
	return types.Ptr(args.Float(name))
}

func intPtr(args param.Values, name string) *int64 {
	if !args.Has(name) {
		return nil
	}
	return types.Ptr(args.Int(name))
}

func boolPtr(args param.Values, name string) *bool {
	if !args.Has(name) {
		return nil
	}
	return types.Ptr(args.Bool(name))
}
