package dashboard

import (
	"time"

	"github.com/eventhub/backend/internal/models"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// SpeakerSeed is the demo schedule of the speaker dashboard.
func SpeakerSeed() (upcoming, past []SpeakerSession) {
	upcoming = []SpeakerSession{
		{ID: "1", Title: "The Future of Web Development", EventID: "1", EventTitle: "Tech Summit 2025", Date: at("2025-06-15T14:00:00Z"), Duration: "45 minutes", Attendees: 280, Status: "scheduled"},
		{ID: "2", Title: "Building Scalable Applications", EventID: "1", EventTitle: "Tech Summit 2025", Date: at("2025-06-16T10:00:00Z"), Duration: "60 minutes", Attendees: 320, Status: "scheduled"},
		{ID: "3", Title: "Advanced React Patterns", EventID: "2", EventTitle: "Digital Marketing Masterclass", Date: at("2025-07-08T13:00:00Z"), Duration: "45 minutes", Attendees: 150, Status: "draft"},
	}
	past = []SpeakerSession{
		{ID: "4", Title: "Introduction to TypeScript", EventID: "4", EventTitle: "Design Systems Workshop", Date: at("2025-04-10T09:00:00Z"), Duration: "45 minutes", Attendees: 215, Rating: 4.8, RecordingURL: "#"},
	}
	return upcoming, past
}

// AttendeeSeed is the demo content of the attendee dashboard.
func AttendeeSeed() (events []AttendeeEvent, saved []SavedSession, completed int) {
	events = []AttendeeEvent{
		{ID: "1", Title: "Tech Summit 2025", Description: "Global technology conference featuring industry leaders", StartDate: at("2025-06-15T09:00:00Z"), EndDate: at("2025-06-17T18:00:00Z"), ImageURL: "https://images.pexels.com/photos/2774556/pexels-photo-2774556.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2", Sessions: 45, SavedSessions: 3},
		{ID: "2", Title: "Digital Marketing Masterclass", Description: "Learn advanced digital marketing strategies", StartDate: at("2025-07-08T10:00:00Z"), EndDate: at("2025-07-09T17:00:00Z"), ImageURL: "https://images.pexels.com/photos/7256420/pexels-photo-7256420.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2", Sessions: 12, SavedSessions: 2},
	}
	saved = []SavedSession{
		{ID: "1", Title: "The Future of Web Development", EventID: "1", EventTitle: "Tech Summit 2025", Date: at("2025-06-15T14:00:00Z"), Duration: "45 minutes", Speaker: models.Sender{Name: "Sarah Johnson", Avatar: "https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2"}, Saved: true, Reminder: true},
		{ID: "2", Title: "Building Scalable Applications", EventID: "1", EventTitle: "Tech Summit 2025", Date: at("2025-06-16T10:00:00Z"), Duration: "60 minutes", Speaker: models.Sender{Name: "Michael Thompson", Avatar: "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2"}, Saved: true},
		{ID: "3", Title: "Advanced React Patterns", EventID: "2", EventTitle: "Digital Marketing Masterclass", Date: at("2025-07-08T13:00:00Z"), Duration: "45 minutes", Speaker: models.Sender{Name: "David Chen", Avatar: "https://images.pexels.com/photos/2379005/pexels-photo-2379005.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2"}, Saved: true, Reminder: true},
	}
	return events, saved, 1
}
