package live

import (
	"time"

	"github.com/eventhub/backend/internal/models"
)

// Seed is the content a new panel starts with.
type Seed struct {
	Chat      []models.ChatMessage
	Questions []models.Question
	Poll      *models.Poll
}

const (
	sarahAvatar = "https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2"
	emilyAvatar = "https://images.pexels.com/photos/1987301/pexels-photo-1987301.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2"
)

// DemoSeed returns the demo chat, questions and poll with timestamps relative to now.
func DemoSeed(now time.Time) Seed {
	now = now.UTC()
	ago := func(min int) time.Time { return now.Add(-time.Duration(min) * time.Minute) }
	sarah := models.Sender{ID: "speaker", Name: "Sarah Johnson", Avatar: sarahAvatar, Role: models.RoleSpeaker}

	return Seed{
		Chat: []models.ChatMessage{
			{ID: "1", Content: "Welcome everyone to the session! We'll be starting in a few minutes.", Sender: sarah, Timestamp: ago(15)},
			{ID: "2", Content: "Looking forward to the session! This topic has been on my radar for a while.", Sender: models.Sender{
				ID: "attendee1", Name: "John Smith", Role: models.RoleAttendee,
				Avatar: "https://images.pexels.com/photos/2379005/pexels-photo-2379005.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
			}, Timestamp: ago(10)},
			{ID: "3", Content: "Is there going to be time for Q&A at the end?", Sender: models.Sender{
				ID: "attendee2", Name: "Emily Davis", Role: models.RoleAttendee, Avatar: emilyAvatar,
			}, Timestamp: ago(5)},
			{ID: "4", Content: "Yes, we'll have about 15 minutes for questions at the end. You can also use the Q&A tab to submit questions during the presentation.", Sender: sarah, Timestamp: ago(4)},
		},
		Questions: []models.Question{
			{ID: "1", Content: "How will these techniques scale for enterprise applications?", AskedBy: models.Sender{
				ID: "attendee3", Name: "Robert Chen",
				Avatar: "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
			}, Timestamp: ago(8), Upvotes: 5},
			{ID: "2", Content: "Can you elaborate more on the security implications of this approach?", AskedBy: models.Sender{
				ID: "attendee4", Name: "Lisa Wang", Avatar: emilyAvatar,
			}, Timestamp: ago(6), Upvotes: 3},
		},
		Poll: &models.Poll{
			ID:       "1",
			Question: "Which technology are you most interested in learning more about?",
			Options: []models.PollOption{
				{ID: "a", Text: "WebAssembly", Votes: 12},
				{ID: "b", Text: "Edge Computing", Votes: 8},
				{ID: "c", Text: "Serverless Architecture", Votes: 15},
				{ID: "d", Text: "AI/ML Integration", Votes: 25},
			},
			TotalVotes: 60,
		},
	}
}
