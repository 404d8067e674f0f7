package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eventhub/backend/internal/live"
	"github.com/eventhub/backend/internal/models"
)

func loginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.session.SignIn(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return a.print(u)
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func registerCmd(a *app) *cobra.Command {
	var name, email, password, role string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in as it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.session.SignUp(cmd.Context(), name, email, password, models.Role(role))
			if err != nil {
				return err
			}
			return a.print(u)
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().StringVarP(&role, "role", "r", string(models.RoleAttendee), "attendee, speaker or admin")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.SignOut(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(a.out, "signed out")
			return err
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, ok := a.session.Current()
			if !ok {
				_, err := fmt.Fprintln(a.out, "not signed in")
				return err
			}
			return a.print(u)
		},
	}
}

func eventsCmd(a *app) *cobra.Command {
	var text, sort string
	var tags []string
	var minPrice, maxPrice int
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List and filter the event catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := make(map[string][]string)
			if text != "" {
				q["q"] = []string{text}
			}
			if len(tags) > 0 {
				q["tags"] = tags
			}
			if minPrice > 0 {
				q["min_price"] = []string{strconv.Itoa(minPrice)}
			}
			if cmd.Flags().Changed("max-price") {
				q["max_price"] = []string{strconv.Itoa(maxPrice)}
			}
			if sort != "" {
				q["sort"] = []string{sort}
			}
			events, err := a.api.Events(cmd.Context(), q)
			if err != nil {
				return err
			}
			for _, e := range events {
				fmt.Fprintf(a.out, "%s\t%s\t$%d\t%s\n", e.ID, e.Title, e.Price(), strings.Join(e.Tags, ","))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&text, "query", "q", "", "text to search titles and descriptions for")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "required tag (repeatable)")
	cmd.Flags().IntVar(&minPrice, "min-price", 0, "lowest general price")
	cmd.Flags().IntVar(&maxPrice, "max-price", 0, "highest general price (unbounded when unset)")
	cmd.Flags().StringVar(&sort, "sort", "", "date, price_asc, price_desc or title")
	return cmd
}

func eventCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "event <id>",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.api.Event(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(e)
		},
	}
}

func dashboardCmd(a *app) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard for your role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.Dashboard(cmd.Context(), status)
			if err != nil {
				return err
			}
			return a.print(res)
		},
	}
	cmd.Flags().StringVarP(&status, "status", "s", "", "admin event filter: all, upcoming, draft or completed")
	return cmd
}

// panelActions maps panel subcommands to the action they send and how they use their argument.
var panelActions = []struct {
	use   string
	short string
	args  int
	build func(arg string) live.Action
}{
	{"toggle", "Show or hide the panel", 0, func(string) live.Action { return live.Action{Type: live.ActionTogglePanel} }},
	{"tab <chat|questions|polls>", "Switch the active tab", 1, func(s string) live.Action { return live.Action{Type: live.ActionSelectTab, Tab: live.Tab(s)} }},
	{"chat <text>", "Post a chat message", 1, func(s string) live.Action { return live.Action{Type: live.ActionPostChat, Text: s} }},
	{"ask <text>", "Ask a question", 1, func(s string) live.Action { return live.Action{Type: live.ActionPostQuestion, Text: s} }},
	{"upvote <question-id>", "Upvote a question", 1, func(s string) live.Action { return live.Action{Type: live.ActionUpvoteQuestion, QuestionID: s} }},
	{"vote <option-id>", "Vote in the active poll", 1, func(s string) live.Action { return live.Action{Type: live.ActionVotePoll, OptionID: s} }},
	{"mic", "Toggle the microphone flag", 0, func(string) live.Action { return live.Action{Type: live.ActionToggleMic} }},
	{"camera", "Toggle the camera flag", 0, func(string) live.Action { return live.Action{Type: live.ActionToggleCamera} }},
}

func panelCmd(a *app) *cobra.Command {
	var sessionID string
	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Show or drive your live-session panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.api.Panel(cmd.Context(), sessionID)
			if err != nil {
				return err
			}
			return a.print(st)
		},
	}
	cmd.PersistentFlags().StringVar(&sessionID, "session", "", "event session id")
	_ = cmd.MarkPersistentFlagRequired("session")

	for _, pa := range panelActions {
		pa := pa // per-iteration copy: go.mod targets Go 1.21 loop-variable semantics
		cmd.AddCommand(&cobra.Command{
			Use:   pa.use,
			Short: pa.short,
			Args:  cobra.MinimumNArgs(pa.args),
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := a.api.ApplyPanel(cmd.Context(), sessionID, pa.build(strings.Join(args, " ")))
				if err != nil {
					return err
				}
				return a.print(st)
			},
		})
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "close",
		Short: "Discard the panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.api.ClosePanel(cmd.Context(), sessionID)
		},
	})
	return cmd
}

func ticketsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tickets",
		Short: "List your tickets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tickets, err := a.api.Tickets(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(tickets)
		},
	}
}

func buyCmd(a *app) *cobra.Command {
	var ticketType string
	cmd := &cobra.Command{
		Use:   "buy <event-id>",
		Short: "Register for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := a.session.Current(); !ok {
				return errors.New("sign in first")
			}
			t, err := a.api.Register(cmd.Context(), args[0], models.TicketType(ticketType))
			if err != nil {
				return err
			}
			return a.print(t)
		},
	}
	cmd.Flags().StringVar(&ticketType, "type", string(models.TicketGeneral), "general or vip")
	return cmd
}
