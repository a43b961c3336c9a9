package models

// CityInput is the citiesData payload entry on trip create/update. Older
// clients nest places under per-day groupings; those are flattened into the
// city's flat lists before storage.
type CityInput struct {
	Name        string       `json:"name"`
	Country     string       `json:"country"`
	Hotels      []PlaceInput `json:"hotels"`
	Restaurants []PlaceInput `json:"restaurants"`
	Activities  []PlaceInput `json:"activities"`
	Days        []DayInput   `json:"days"`
}

// DayInput groups places by day in legacy payloads.
type DayInput struct {
	Hotels      []PlaceInput `json:"hotels"`
	Restaurants []PlaceInput `json:"restaurants"`
	Activities  []PlaceInput `json:"activities"`
}

// PlaceInput carries one hotel/restaurant/activity in a trip payload.
// Pointer fields stay nil when the client recorded no value.
type PlaceInput struct {
	Name     string   `json:"name"`
	Location string   `json:"location"`
	Rating   *float64 `json:"rating"`
	Review   *string  `json:"review"`
	Liked    *bool    `json:"liked"`
}

// ToCity converts one input entry into a City row tree, folding any days
// substructure into the flat child lists.
func (in CityInput) ToCity() City {
	city := City{
		Name:        in.Name,
		Country:     in.Country,
		Hotels:      toHotels(in.Hotels),
		Restaurants: toRestaurants(in.Restaurants),
		Activities:  toActivities(in.Activities),
	}
	for _, day := range in.Days {
		city.Hotels = append(city.Hotels, toHotels(day.Hotels)...)
		city.Restaurants = append(city.Restaurants, toRestaurants(day.Restaurants)...)
		city.Activities = append(city.Activities, toActivities(day.Activities)...)
	}
	return city
}

func toHotels(inputs []PlaceInput) []Hotel {
	hotels := make([]Hotel, 0, len(inputs))
	for _, in := range inputs {
		hotels = append(hotels, Hotel{
			Name:     in.Name,
			Location: in.Location,
			Rating:   in.Rating,
			Review:   in.Review,
			Liked:    in.Liked,
		})
	}
	return hotels
}

func toRestaurants(inputs []PlaceInput) []Restaurant {
	restaurants := make([]Restaurant, 0, len(inputs))
	for _, in := range inputs {
		restaurants = append(restaurants, Restaurant{
			Name:     in.Name,
			Location: in.Location,
			Rating:   in.Rating,
			Review:   in.Review,
			Liked:    in.Liked,
		})
	}
	return restaurants
}

func toActivities(inputs []PlaceInput) []Activity {
	activities := make([]Activity, 0, len(inputs))
	for _, in := range inputs {
		activities = append(activities, Activity{
			Name:     in.Name,
			Location: in.Location,
			Rating:   in.Rating,
			Review:   in.Review,
			Liked:    in.Liked,
		})
	}
	return activities
}
