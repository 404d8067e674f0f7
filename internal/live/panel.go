// Package live implements the per-viewer side panel of a live event session: chat feed, question
// feed, the active poll and the viewer's local device toggles.
package live

import (
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eventhub/backend/internal/errs"
	"github.com/eventhub/backend/internal/models"
)

// Tab is the sub-tab shown in the panel.
type Tab string

const (
	TabChat      Tab = "chat"
	TabQuestions Tab = "questions"
	TabPolls     Tab = "polls"
)

// ActionType names a panel operation.
type ActionType string

const (
	ActionTogglePanel    ActionType = "toggle_panel"
	ActionSelectTab      ActionType = "select_tab"
	ActionPostChat       ActionType = "post_chat"
	ActionPostQuestion   ActionType = "post_question"
	ActionUpvoteQuestion ActionType = "upvote_question"
	ActionVotePoll       ActionType = "vote_poll"
	ActionToggleMic      ActionType = "toggle_mic"
	ActionToggleCamera   ActionType = "toggle_camera"
)

// Action is one viewer interaction. Only the fields its Type needs are read.
type Action struct {
	Type       ActionType `json:"type"`
	Tab        Tab        `json:"tab,omitempty"`
	Text       string     `json:"text,omitempty"`
	QuestionID string     `json:"question_id,omitempty"`
	OptionID   string     `json:"option_id,omitempty"`
}

// State is a snapshot of a panel. Snapshots share no mutable memory with the panel.
type State struct {
	SessionID     string               `json:"session_id"`
	ViewerID      string               `json:"viewer_id"`
	Visible       bool                 `json:"visible"`
	ActiveTab     Tab                  `json:"active_tab"`
	Chat          []models.ChatMessage `json:"chat"`
	Questions     []models.Question    `json:"questions"`
	Poll          *models.Poll         `json:"poll,omitempty"`
	Percentages   map[string]int       `json:"percentages,omitempty"`
	MicEnabled    bool                 `json:"mic_enabled"`
	CameraEnabled bool                 `json:"camera_enabled"`
}

// Percentage is votes as a whole percent of total, rounding halves up. It is 0 when total is 0.
func Percentage(votes, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(votes)*100/float64(total) + 0.5))
}

// Panel is the panel state of one viewer in one event session.
type Panel struct {
	mu     sync.Mutex
	viewer models.User
	state  State
	now    func() time.Time
	newID  func() string
}

// NewPanel returns a visible panel on the chat tab, seeded with content.
func NewPanel(sessionID string, viewer models.User, seed Seed) *Panel {
	return &Panel{
		viewer: viewer,
		state: State{
			SessionID: sessionID,
			ViewerID:  viewer.ID,
			Visible:   true,
			ActiveTab: TabChat,
			Chat:      slices.Clip(slices.Clone(seed.Chat)),
			Questions: slices.Clip(slices.Clone(seed.Questions)),
			Poll:      clonePoll(seed.Poll),
		},
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Snapshot returns the current state.
func (p *Panel) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot()
}

func (p *Panel) snapshot() State {
	st := p.state
	if st.Poll != nil {
		st.Percentages = make(map[string]int, len(st.Poll.Options))
		for _, o := range st.Poll.Options {
			st.Percentages[o.ID] = Percentage(o.Votes, st.Poll.TotalVotes)
		}
	}
	return st
}

// Apply runs a and returns the resulting state. A failed action leaves the panel unchanged.
func (p *Panel) Apply(a Action) (State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.apply(a); err != nil {
		return State{}, err
	}
	return p.snapshot(), nil
}

func (p *Panel) apply(a Action) error {
	switch a.Type {
	case ActionTogglePanel:
		p.state.Visible = !p.state.Visible
	case ActionSelectTab:
		return p.selectTab(a.Tab)
	case ActionPostChat:
		return p.postChat(a.Text)
	case ActionPostQuestion:
		return p.postQuestion(a.Text)
	case ActionUpvoteQuestion:
		return p.upvote(a.QuestionID)
	case ActionVotePoll:
		return p.vote(a.OptionID)
	case ActionToggleMic:
		p.state.MicEnabled = !p.state.MicEnabled
	case ActionToggleCamera:
		p.state.CameraEnabled = !p.state.CameraEnabled
	default:
		return errs.Invalid("type", "Unknown panel action")
	}
	return nil
}

func (p *Panel) selectTab(t Tab) error {
	switch t {
	case TabChat, TabQuestions, TabPolls:
		p.state.ActiveTab = t
		return nil
	}
	return errs.Invalid("tab", "Tab must be chat, questions or polls")
}

func (p *Panel) postChat(text string) error {
	if strings.TrimSpace(text) == "" {
		return errs.ErrEmptyContent
	}
	msg := models.ChatMessage{
		ID:        p.newID(),
		Content:   text,
		Sender:    p.viewer.Sender(),
		Timestamp: p.now().UTC(),
	}
	// Clip first so the append never writes into an array a snapshot still references.
	p.state.Chat = append(slices.Clip(p.state.Chat), msg)
	return nil
}

func (p *Panel) postQuestion(text string) error {
	if strings.TrimSpace(text) == "" {
		return errs.ErrEmptyContent
	}
	q := models.Question{
		ID:        p.newID(),
		Content:   text,
		AskedBy:   p.viewer.Sender(),
		Timestamp: p.now().UTC(),
	}
	p.state.Questions = append(slices.Clip(p.state.Questions), q)
	return nil
}

// Upvotes are not tied to the viewer: the same viewer may upvote a question any number of times.
func (p *Panel) upvote(id string) error {
	i := slices.IndexFunc(p.state.Questions, func(q models.Question) bool { return q.ID == id })
	if i < 0 {
		return errs.NotFound("question", id)
	}
	qs := slices.Clone(p.state.Questions)
	qs[i].Upvotes++
	p.state.Questions = slices.Clip(qs)
	return nil
}

func (p *Panel) vote(optionID string) error {
	poll := p.state.Poll
	if poll == nil {
		return errs.NotFound("poll", "")
	}
	if poll.UserVote != nil {
		return errs.ErrAlreadyVoted
	}
	i := slices.IndexFunc(poll.Options, func(o models.PollOption) bool { return o.ID == optionID })
	if i < 0 {
		return errs.NotFound("poll option", optionID)
	}
	next := clonePoll(poll)
	next.Options[i].Votes++
	next.TotalVotes++
	choice := optionID
	next.UserVote = &choice
	p.state.Poll = next
	return nil
}

func clonePoll(p *models.Poll) *models.Poll {
	if p == nil {
		return nil
	}
	c := *p
	c.Options = slices.Clone(p.Options)
	if p.UserVote != nil {
		v := *p.UserVote
		c.UserVote = &v
	}
	return &c
}

// TogglePanel shows or hides the panel.
func (p *Panel) TogglePanel() State {
	st, _ := p.Apply(Action{Type: ActionTogglePanel})
	return st
}

// SelectTab switches the active sub-tab.
func (p *Panel) SelectTab(t Tab) error {
	_, err := p.Apply(Action{Type: ActionSelectTab, Tab: t})
	return err
}

// PostChatMessage appends a chat message from the viewer. Blank text is rejected.
func (p *Panel) PostChatMessage(text string) error {
	_, err := p.Apply(Action{Type: ActionPostChat, Text: text})
	return err
}

// PostQuestion appends a question from the viewer with no upvotes. Blank text is rejected.
func (p *Panel) PostQuestion(text string) error {
	_, err := p.Apply(Action{Type: ActionPostQuestion, Text: text})
	return err
}

// UpvoteQuestion adds one upvote to the question.
func (p *Panel) UpvoteQuestion(id string) error {
	_, err := p.Apply(Action{Type: ActionUpvoteQuestion, QuestionID: id})
	return err
}

// VotePoll records the viewer's choice on the active poll. A viewer votes at most once.
func (p *Panel) VotePoll(optionID string) error {
	_, err := p.Apply(Action{Type: ActionVotePoll, OptionID: optionID})
	return err
}

// ToggleMic flips the local microphone flag.
func (p *Panel) ToggleMic() State {
	st, _ := p.Apply(Action{Type: ActionToggleMic})
	return st
}

// ToggleCamera flips the local camera flag.
func (p *Panel) ToggleCamera() State {
	st, _ := p.Apply(Action{Type: ActionToggleCamera})
	return st
}
