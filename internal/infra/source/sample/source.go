package sample

import (
	"context"
	"time"

	domain "github.com/bryanwahyu/guest-pulse/internal/domain/reviews"
)

// Source serves a fixed in-repo review corpus. It stands in for the real
// review-platform integration: deterministic, bounded, no network.
type Source struct{}

func New() *Source { return &Source{} }

// FetchRaw returns up to limit reviews. The hotel id does not change the
// corpus; it only scopes where the pipeline files the results.
func (s *Source) FetchRaw(_ context.Context, _ string, limit int) ([]domain.RawReview, error) {
	all := sampleReviews()
	if limit > len(all) {
		limit = len(all)
	}
	return all[:limit], nil
}

func sampleReviews() []domain.RawReview {
	now := time.Now()
	daysAgo := func(d int) *time.Time {
		t := now.AddDate(0, 0, -d)
		return &t
	}
	return []domain.RawReview{
		{
			Text:   "Amazing stay! The room was spotlessly clean and the staff were incredibly helpful. The location is perfect for exploring the city. Highly recommend!",
			Author: "Sarah Johnson", Rating: 5.0, Date: daysAgo(2),
		},
		{
			Text:   "Found bed bugs in the room on the second night. Absolutely disgusting and unacceptable for a hotel of this price. Management was unhelpful. DO NOT STAY HERE!",
			Author: "Michael Chen", Rating: 1.0, Date: daysAgo(1),
		},
		{
			Text:   "The hotel was okay. Room was clean but quite small. Breakfast was decent. Location is convenient but parking was expensive.",
			Author: "Emily Rodriguez", Rating: 3.0, Date: daysAgo(3),
		},
		{
			Text:   "Terrible experience. Got food poisoning from the hotel restaurant. When I complained, the staff was rude and dismissive. This is a serious health hazard!",
			Author: "David Thompson", Rating: 1.0, Date: daysAgo(5),
		},
		{
			Text:   "Lovely hotel with excellent service. The concierge helped us plan our entire itinerary. Rooms are beautifully decorated and very comfortable. Will definitely return!",
			Author: "Jennifer Lee", Rating: 5.0, Date: daysAgo(7),
		},
		{
			Text:   "Good value for money. The amenities were basic but functional. Staff was friendly. Could use some renovation but overall a pleasant stay.",
			Author: "Robert Martinez", Rating: 4.0, Date: daysAgo(4),
		},
		{
			Text:   "Someone broke into our room and stole valuables while we were at breakfast. Hotel security is non-existent. Police were called but hotel denied responsibility. Avoid at all costs!",
			Author: "Amanda Wilson", Rating: 1.0, Date: daysAgo(6),
		},
		{
			Text:   "The location is fantastic, right in the heart of downtown. Easy walking distance to all major attractions. Room was clean and comfortable. Staff was professional.",
			Author: "Christopher Brown", Rating: 4.5, Date: daysAgo(8),
		},
		{
			Text:   "Average hotel. Nothing special but nothing terrible either. The room was clean, bed was comfortable. Breakfast options were limited.",
			Author: "Lisa Anderson", Rating: 3.5, Date: daysAgo(9),
		},
		{
			Text:   "Exceptional service from start to finish. The staff went above and beyond to make our anniversary special. Beautiful views and amazing amenities. Worth every penny!",
			Author: "James Taylor", Rating: 5.0, Date: daysAgo(10),
		},
	}
}
