package catalog

import (
	"time"

	"github.com/eventhub/backend/internal/models"
)

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedEvents returns the demo catalog in display order. Event "1" carries speakers and a
// three-day schedule; the others only have aggregate counts.
func SeedEvents() []models.Event {
	return []models.Event{
		{
			ID:           "1",
			Title:        "Tech Summit 2025",
			Description:  "Global technology conference featuring industry leaders and innovators discussing the latest trends, breakthroughs, and future of technology.",
			StartDate:    mustTime("2025-06-15T09:00:00Z"),
			EndDate:      mustTime("2025-06-17T18:00:00Z"),
			Location:     "Virtual",
			ImageURL:     "https://images.pexels.com/photos/2774556/pexels-photo-2774556.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
			Organizer:    "TechCorp",
			Prices:       models.PriceTiers{General: 99, VIP: 199},
			Tags:         []string{"Technology", "Innovation", "AI", "Web Development"},
			SessionCount: 45,
			Attendees:    1250,
			Status:       models.EventUpcoming,
			IsPublished:  true,
			Speakers: []models.Speaker{
				{ID: "1", Name: "Sarah Johnson", Title: "CTO, FutureTech", Bio: "Sarah is a leading expert in AI and machine learning with over 15 years of experience in the tech industry.", Avatar: "https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2"},
				{ID: "2", Name: "Michael Thompson", Title: "Director of Engineering, CodeCorp", Bio: "Michael leads large-scale distributed systems development and is passionate about cloud architecture.", Avatar: "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2"},
				{ID: "3", Name: "David Chen", Title: "Product Lead, InnovateLabs", Bio: "David specializes in product strategy and has launched multiple successful software products.", Avatar: "https://images.pexels.com/photos/2379005/pexels-photo-2379005.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2"},
			},
			Schedule: []models.ScheduleDay{
				{
					Day: "Day 1 - June 15, 2025",
					Sessions: []models.EventSession{
						{ID: "101", Title: "Opening Keynote: The Future of Technology", Time: "9:00 AM - 10:30 AM", Speaker: "Sarah Johnson", Description: "Join our opening keynote to explore the most exciting technological trends shaping our future.", Location: "Main Stage"},
						{ID: "102", Title: "Web Development in 2025", Time: "11:00 AM - 12:00 PM", Speaker: "Michael Thompson", Description: "Discover the latest web development techniques and tools that are transforming the industry.", Location: "Track 1"},
						{ID: "103", Title: "AI-Driven Product Design", Time: "1:00 PM - 2:00 PM", Speaker: "David Chen", Description: "Learn how artificial intelligence is revolutionizing product design and user experiences.", Location: "Track 2"},
					},
				},
				{
					Day: "Day 2 - June 16, 2025",
					Sessions: []models.EventSession{
						{ID: "201", Title: "Building Scalable Applications", Time: "10:00 AM - 11:30 AM", Speaker: "Michael Thompson", Description: "Explore architectures and patterns for building applications that can scale to millions of users.", Location: "Track 1"},
						{ID: "202", Title: "Machine Learning Workshop", Time: "1:00 PM - 3:00 PM", Speaker: "Sarah Johnson", Description: "Hands-on workshop introducing practical machine learning techniques you can apply today.", Location: "Workshop Room A"},
					},
				},
				{
					Day: "Day 3 - June 17, 2025",
					Sessions: []models.EventSession{
						{ID: "301", Title: "Future of Cloud Computing", Time: "9:30 AM - 10:30 AM", Speaker: "David Chen", Description: "Explore emerging trends in cloud computing and how they will shape the future of software deployment.", Location: "Track 2"},
						{ID: "302", Title: "Closing Panel: Technology Ethics", Time: "4:00 PM - 5:30 PM", Speaker: "All Speakers", Description: "Join our distinguished panel for a discussion on ethical considerations in technology development.", Location: "Main Stage"},
					},
				},
			},
		},
		{
			ID:           "2",
			Title:        "Digital Marketing Masterclass",
			Description:  "Learn advanced digital marketing strategies from experts at leading global brands. Perfect for marketers looking to enhance their skills.",
			StartDate:    mustTime("2025-07-08T10:00:00Z"),
			EndDate:      mustTime("2025-07-09T17:00:00Z"),
			Location:     "Virtual",
			ImageURL:     "https://images.pexels.com/photos/7256420/pexels-photo-7256420.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
			Organizer:    "Marketing Pros",
			Prices:       models.PriceTiers{General: 75, VIP: 175},
			Tags:         []string{"Marketing", "Digital", "SEO", "Content Strategy"},
			SessionCount: 12,
			Attendees:    780,
			Status:       models.EventUpcoming,
			IsPublished:  true,
		},
		{
			ID:           "3",
			Title:        "Entrepreneur Summit 2025",
			Description:  "Connect with successful entrepreneurs and venture capitalists to take your business to the next level. Get inspired and find funding opportunities.",
			StartDate:    mustTime("2025-08-22T09:00:00Z"),
			EndDate:      mustTime("2025-08-24T17:00:00Z"),
			Location:     "Virtual",
			ImageURL:     "https://images.pexels.com/photos/3184287/pexels-photo-3184287.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
			Organizer:    "StartupConnect",
			Prices:       models.PriceTiers{General: 129, VIP: 229},
			Tags:         []string{"Business", "Entrepreneurship", "Startups", "Venture Capital"},
			SessionCount: 30,
			Attendees:    950,
			Status:       models.EventDraft,
		},
		{
			ID:           "4",
			Title:        "Design Systems Workshop",
			Description:  "Comprehensive workshop on building robust design systems that scale. Learn from industry leaders about creating consistent user experiences.",
			StartDate:    mustTime("2025-09-10T09:00:00Z"),
			EndDate:      mustTime("2025-09-10T17:00:00Z"),
			Location:     "Virtual",
			ImageURL:     "https://images.pexels.com/photos/196644/pexels-photo-196644.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
			Organizer:    "DesignHub",
			Prices:       models.PriceTiers{General: 49, VIP: 149},
			Tags:         []string{"Design", "UX", "UI", "Creative"},
			SessionCount: 8,
			Attendees:    430,
			Status:       models.EventCompleted,
			IsPublished:  true,
		},
		{
			ID:           "5",
			Title:        "AI & Machine Learning Conference",
			Description:  "Explore the latest advancements in artificial intelligence and machine learning with researchers and industry professionals.",
			StartDate:    mustTime("2025-10-15T09:00:00Z"),
			EndDate:      mustTime("2025-10-17T18:00:00Z"),
			Location:     "Virtual",
			ImageURL:     "https://images.pexels.com/photos/8386434/pexels-photo-8386434.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
			Organizer:    "AI Research Institute",
			Prices:       models.PriceTiers{General: 149, VIP: 249},
			Tags:         []string{"AI", "Machine Learning", "Data Science", "Research"},
			SessionCount: 36,
			Attendees:    1100,
			Status:       models.EventUpcoming,
			IsPublished:  true,
		},
		{
			ID:           "6",
			Title:        "Global Health Summit",
			Description:  "Join healthcare professionals, researchers, and policy makers to discuss global health challenges and innovations in healthcare delivery.",
			StartDate:    mustTime("2025-11-05T09:00:00Z"),
			EndDate:      mustTime("2025-11-07T17:00:00Z"),
			Location:     "Virtual",
			ImageURL:     "https://images.pexels.com/photos/4386466/pexels-photo-4386466.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
			Organizer:    "Global Health Initiative",
			Prices:       models.PriceTiers{General: 85, VIP: 185},
			Tags:         []string{"Healthcare", "Medicine", "Public Health", "Research"},
			SessionCount: 28,
			Attendees:    920,
			Status:       models.EventUpcoming,
			IsPublished:  true,
		},
	}
}
