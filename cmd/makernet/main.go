// Command makernet is a terminal client for the MakerNet platform.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"makernet/internal/api"
	"makernet/internal/cli/output"
	"makernet/internal/config"
	"makernet/internal/models"
	"makernet/internal/observability"
	"makernet/internal/realtime"
	"makernet/internal/service"
	"makernet/internal/session"
	"makernet/internal/view"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		output.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	applyLogLevel(cfg.LogLevel)

	shutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "makernet-client",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TraceExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TraceSample,
	})
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = shutdown(ctx)
	}()

	app, err := newApp(cfg)
	if err != nil {
		return err
	}

	switch args[0] {
	case "connect":
		return app.cmdConnect(args[1:])
	case "disconnect":
		return app.cmdDisconnect()
	case "whoami":
		return app.cmdWhoAmI()
	case "feed":
		return app.cmdFeed(args[1:])
	case "bookmarks":
		return app.cmdBookmarks(args[1:])
	case "gigs":
		return app.cmdGigs(args[1:])
	case "notifications":
		return app.cmdNotifications(args[1:])
	case "messages":
		return app.cmdMessages(args[1:])
	case "admin":
		return app.cmdAdmin(args[1:])
	case "account":
		return app.cmdAccount(args[1:])
	case "billing":
		return app.cmdBilling(args[1:])
	default:
		return usage()
	}
}

func usage() error {
	fmt.Println(`makernet <command>

  connect <url> --token <t>   save credentials after validating them
  disconnect                  forget saved credentials
  whoami                      show the signed-in account

  feed [list|post|like|bookmark|repost|report] ...
  bookmarks [--page n] [--search s]
  gigs [list|mine|bids|show|create|bid|hire|complete|review] ...
  notifications [list|read|read-all] ...
  messages [list|open|send|watch] ...
  admin [reports|review|dismiss|resolve|users|verify|delete-user] ...
  account [show|update|username] ...
  billing [status|upgrade|portal]

Common flags: --page, --limit, --search, --status, --type, --sort, --format json|table`)
	return nil
}

func applyLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		observability.SetLevel(slog.LevelDebug)
	case "warn":
		observability.SetLevel(slog.LevelWarn)
	case "error":
		observability.SetLevel(slog.LevelError)
	default:
		observability.SetLevel(slog.LevelInfo)
	}
}

// app wires one invocation's config, session, client, and services.
type app struct {
	cfg    *config.Config
	store  *session.Store
	sess   *session.Session
	client *api.Client
}

func newApp(cfg *config.Config) (*app, error) {
	store := &session.Store{Path: cfg.TokenPath}
	token := cfg.APIToken
	if token == "" {
		saved, err := store.Load()
		if err != nil {
			return nil, err
		}
		token = saved
	}

	client := api.New(cfg.APIBaseURL,
		api.WithToken(token),
		api.WithTimeout(time.Duration(cfg.RequestTimeout)*time.Second),
	)
	return &app{
		cfg:    cfg,
		store:  store,
		sess:   &session.Session{Token: token},
		client: client,
	}, nil
}

// loadUser resolves the current account into the session. Commands that
// need identity or privilege flags call this first.
func (a *app) loadUser(ctx context.Context) error {
	if err := a.sess.RequireAuth(); err != nil {
		return fmt.Errorf("%w; run: makernet connect <url> --token <t>", err)
	}
	user, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	a.sess.User = user
	return nil
}

func (a *app) cmdConnect(args []string) error {
	fs := flag.NewFlagSet("connect", flag.ContinueOnError)
	token := fs.String("token", "", "API token")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: makernet connect <url> --token <t>")
	}
	rawURL := strings.TrimSpace(fs.Arg(0))
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if strings.TrimSpace(*token) == "" {
		return errors.New("missing --token")
	}

	client := api.New(rawURL, api.WithToken(*token))
	user, err := client.Me(context.Background())
	if err != nil {
		return fmt.Errorf("validate credentials: %w", err)
	}

	if err := a.store.Save(*token); err != nil {
		return err
	}
	viper.Set("API_BASE_URL", rawURL)
	if home, err := os.UserHomeDir(); err == nil {
		dir := home + "/.makernet"
		if err := os.MkdirAll(dir, 0o700); err == nil {
			_ = viper.WriteConfigAs(dir + "/config.yml")
		}
	}
	fmt.Printf("connected to %s as %s\n", rawURL, user.Username)
	return nil
}

func (a *app) cmdDisconnect() error {
	if err := a.store.Clear(); err != nil {
		return err
	}
	fmt.Println("disconnected")
	return nil
}

func (a *app) cmdWhoAmI() error {
	ctx := context.Background()
	if err := a.loadUser(ctx); err != nil {
		return err
	}
	u := a.sess.User
	return output.Print(u, "json")
}

// listFlags are the shared list-view flags.
type listFlags struct {
	page   *int
	limit  *int
	search *string
	status *string
	typ    *string
	sort   *string
	format *string
}

func addListFlags(fs *flag.FlagSet, defaultLimit int) listFlags {
	return listFlags{
		page:   fs.Int("page", 0, "Zero-based page"),
		limit:  fs.Int("limit", defaultLimit, "Page size"),
		search: fs.String("search", "", "Search text"),
		status: fs.String("status", "", "Status filter"),
		typ:    fs.String("type", "", "Type filter"),
		sort:   fs.String("sort", "", "Sort key"),
		format: fs.String("format", "", "Output format: json or table"),
	}
}

// runList drives one controller through filter setup, pagination, and the
// final state read. Filter changes reset the offset to zero; only an
// explicit --page moves it afterwards.
func runList[T any](ctx context.Context, c *view.Controller[T], lf listFlags) ([]T, int, error) {
	c.SetFilter(ctx, func(f *view.Filter) {
		f.Limit = *lf.limit
		f.Search = *lf.search
		f.Status = *lf.status
		f.Type = *lf.typ
		f.SortBy = *lf.sort
	})
	if *lf.page > 0 {
		c.SetPage(ctx, *lf.page)
	}
	if err := c.Err(); err != nil {
		return nil, 0, err
	}
	return c.Items(), c.PageCount(), nil
}

func pageFooter(page, pages, total int) string {
	return fmt.Sprintf("page %d of %d (%d total)", page+1, pages, total)
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint(id), nil
}

func (a *app) cmdFeed(args []string) error {
	ctx := context.Background()
	svc := service.NewFeedService(a.client, a.cfg.PageSize)

	sub := "list"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list":
		fs := flag.NewFlagSet("feed", flag.ContinueOnError)
		lf := addListFlags(fs, a.cfg.PageSize)
		if err := fs.Parse(args); err != nil {
			return err
		}
		items, pages, err := runList(ctx, svc.Feed, lf)
		if err != nil {
			return err
		}
		return output.Print(feedTable(items, svc.Feed.Filter().Page(), pages, svc.Feed.Total()), *lf.format)
	case "post":
		fs := flag.NewFlagSet("feed post", flag.ContinueOnError)
		typ := fs.String("type", string(models.FeedItemUpdate), "update or project")
		title := fs.String("title", "", "Post title")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err := a.loadUser(ctx); err != nil {
			return err
		}
		content := strings.Join(fs.Args(), " ")
		if content == "" {
			return errors.New("usage: makernet feed post [--type t] [--title t] <content>")
		}
		item, err := svc.CreatePost(ctx, models.FeedItemType(*typ), *title, content)
		if err != nil {
			return err
		}
		fmt.Printf("posted %d\n", item.ID)
		return nil
	case "like", "bookmark", "repost":
		if len(args) != 1 {
			return fmt.Errorf("usage: makernet feed %s <id>", sub)
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := a.loadUser(ctx); err != nil {
			return err
		}
		switch sub {
		case "like":
			return svc.ToggleLike(ctx, id)
		case "bookmark":
			return svc.ToggleBookmark(ctx, id)
		default:
			return svc.ToggleRepost(ctx, id)
		}
	case "report":
		fs := flag.NewFlagSet("feed report", flag.ContinueOnError)
		typ := fs.String("type", string(models.ReportablePost), "Post, Project, Comment, or Gig")
		reason := fs.String("reason", "", "Reason for the report")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return errors.New("usage: makernet feed report <id> [--type t] [--reason r]")
		}
		id, err := parseID(fs.Arg(0))
		if err != nil {
			return err
		}
		if err := a.loadUser(ctx); err != nil {
			return err
		}
		return svc.Report(ctx, models.ReportableType(*typ), id, *reason)
	default:
		return fmt.Errorf("unknown feed subcommand %q", sub)
	}
}

func feedTable(items []models.FeedItem, page, pages, total int) output.Table {
	t := output.Table{
		Header: []string{"ID", "TYPE", "AUTHOR", "LIKES", "COMMENTS", "REPOSTS", "CONTENT"},
		Footer: pageFooter(page, pages, total),
	}
	for _, i := range items {
		t.Rows = append(t.Rows, []string{
			strconv.FormatUint(uint64(i.ID), 10),
			string(i.Type),
			i.Author.Username,
			strconv.Itoa(i.LikesCount),
			strconv.Itoa(i.CommentsCount),
			strconv.Itoa(i.RepostsCount),
			truncate(i.Content, 60),
		})
	}
	return t
}

func (a *app) cmdBookmarks(args []string) error {
	ctx := context.Background()
	if err := a.loadUser(ctx); err != nil {
		return err
	}
	svc := service.NewFeedService(a.client, a.cfg.PageSize)
	fs := flag.NewFlagSet("bookmarks", flag.ContinueOnError)
	lf := addListFlags(fs, a.cfg.PageSize)
	if err := fs.Parse(args); err != nil {
		return err
	}
	items, pages, err := runList(ctx, svc.Bookmarks, lf)
	if err != nil {
		return err
	}
	return output.Print(feedTable(items, svc.Bookmarks.Filter().Page(), pages, svc.Bookmarks.Total()), *lf.format)
}

func (a *app) cmdGigs(args []string) error {
	ctx := context.Background()
	svc := service.NewGigService(a.client, a.sess, a.cfg.PageSize)

	sub := "list"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list", "mine":
		fs := flag.NewFlagSet("gigs", flag.ContinueOnError)
		lf := addListFlags(fs, a.cfg.PageSize)
		minBudget := fs.Int("min-budget", 0, "Minimum budget filter")
		maxBudget := fs.Int("max-budget", 0, "Maximum budget filter")
		if err := fs.Parse(args); err != nil {
			return err
		}
		ctl := svc.Browse
		if sub == "mine" {
			if err := a.loadUser(ctx); err != nil {
				return err
			}
			ctl = svc.Mine
		}
		ctl.SetFilter(ctx, func(f *view.Filter) {
			f.Limit = *lf.limit
			f.Search = *lf.search
			f.Status = *lf.status
			f.SortBy = *lf.sort
			f.MinBudget = optInt(*minBudget)
			f.MaxBudget = optInt(*maxBudget)
		})
		if *lf.page > 0 {
			ctl.SetPage(ctx, *lf.page)
		}
		if err := ctl.Err(); err != nil {
			return err
		}
		return output.Print(gigTable(ctl.Items(), ctl.Filter().Page(), ctl.PageCount(), ctl.Total()), *lf.format)
	case "bids":
		fs := flag.NewFlagSet("gigs bids", flag.ContinueOnError)
		lf := addListFlags(fs, a.cfg.PageSize)
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err := a.loadUser(ctx); err != nil {
			return err
		}
		items, pages, err := runList(ctx, svc.MyBids, lf)
		if err != nil {
			return err
		}
		t := output.Table{
			Header: []string{"ID", "GIG", "AMOUNT", "STATUS"},
			Footer: pageFooter(svc.MyBids.Filter().Page(), pages, svc.MyBids.Total()),
		}
		for _, b := range items {
			t.Rows = append(t.Rows, []string{
				strconv.FormatUint(uint64(b.ID), 10),
				strconv.FormatUint(uint64(b.GigID), 10),
				strconv.Itoa(b.Amount),
				string(b.Status),
			})
		}
		return output.Print(t, *lf.format)
	case "show":
		if len(args) != 1 {
			return errors.New("usage: makernet gigs show <id>")
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		gig, err := a.client.GetGig(ctx, id)
		if err != nil {
			return err
		}
		return output.Print(gig, "json")
	case "create":
		fs := flag.NewFlagSet("gigs create", flag.ContinueOnError)
		title := fs.String("title", "", "Gig title")
		desc := fs.String("description", "", "Gig description")
		minBudget := fs.Int("min-budget", 0, "Minimum budget")
		maxBudget := fs.Int("max-budget", 0, "Maximum budget")
		currency := fs.String("currency", "USD", "Budget currency")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err := a.loadUser(ctx); err != nil {
			return err
		}
		gig, err := svc.CreateGig(ctx, *title, *desc, *minBudget, *maxBudget, *currency)
		if err != nil {
			return err
		}
		fmt.Printf("created gig %d\n", gig.ID)
		return nil
	case "bid":
		fs := flag.NewFlagSet("gigs bid", flag.ContinueOnError)
		amount := fs.Int("amount", 0, "Bid amount")
		message := fs.String("message", "", "Bid message")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return errors.New("usage: makernet gigs bid <gig-id> --amount n [--message m]")
		}
		id, err := parseID(fs.Arg(0))
		if err != nil {
			return err
		}
		if err := a.loadUser(ctx); err != nil {
			return err
		}
		gig, err := a.client.GetGig(ctx, id)
		if err != nil {
			return err
		}
		bid, err := svc.PlaceBid(ctx, gig, *amount, *message)
		if err != nil {
			return err
		}
		fmt.Printf("placed bid %d on gig %d\n", bid.ID, gig.ID)
		return nil
	case "hire":
		if len(args) != 2 {
			return errors.New("usage: makernet gigs hire <gig-id> <bid-id>")
		}
		gigID, err := parseID(args[0])
		if err != nil {
			return err
		}
		bidID, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := a.loadUser(ctx); err != nil {
			return err
		}
		gig, err := a.client.GetGig(ctx, gigID)
		if err != nil {
			return err
		}
		updated, bids, err := svc.Hire(ctx, gig, bidID)
		if err != nil {
			return err
		}
		fmt.Printf("gig %d is now %s; %d bid(s) updated\n", updated.ID, updated.Status, len(bids))
		return nil
	case "complete":
		if len(args) != 1 {
			return errors.New("usage: makernet gigs complete <gig-id>")
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := a.loadUser(ctx); err != nil {
			return err
		}
		gig, err := a.client.GetGig(ctx, id)
		if err != nil {
			return err
		}
		updated, err := svc.Complete(ctx, gig)
		if err != nil {
			return err
		}
		fmt.Printf("gig %d is now %s\n", updated.ID, updated.Status)
		return nil
	case "review":
		fs := flag.NewFlagSet("gigs review", flag.ContinueOnError)
		rating := fs.Int("rating", 0, "Rating from 1 to 5")
		comment := fs.String("comment", "", "Review comment")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return errors.New("usage: makernet gigs review <gig-id> --rating n [--comment c]")
		}
		id, err := parseID(fs.Arg(0))
		if err != nil {
			return err
		}
		if err := a.loadUser(ctx); err != nil {
			return err
		}
		gig, err := a.client.GetGig(ctx, id)
		if err != nil {
			return err
		}
		review, err := svc.SubmitReview(ctx, gig, *rating, *comment)
		if err != nil {
			return err
		}
		fmt.Printf("review %d submitted\n", review.ID)
		return nil
	default:
		return fmt.Errorf("unknown gigs subcommand %q", sub)
	}
}

func gigTable(items []models.Gig, page, pages, total int) output.Table {
	t := output.Table{
		Header: []string{"ID", "TITLE", "BUDGET", "STATUS", "OWNER", "BIDS"},
		Footer: pageFooter(page, pages, total),
	}
	for _, g := range items {
		t.Rows = append(t.Rows, []string{
			strconv.FormatUint(uint64(g.ID), 10),
			truncate(g.Title, 40),
			fmt.Sprintf("%d-%d %s", g.BudgetMin, g.BudgetMax, g.Currency),
			string(g.Status),
			g.User.Username,
			strconv.Itoa(g.BidsCount),
		})
	}
	return t
}

func (a *app) cmdNotifications(args []string) error {
	ctx := context.Background()
	if err := a.loadUser(ctx); err != nil {
		return err
	}
	svc := service.NewNotificationService(a.client, a.cfg.PageSize)

	sub := "list"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list":
		fs := flag.NewFlagSet("notifications", flag.ContinueOnError)
		lf := addListFlags(fs, a.cfg.PageSize)
		if err := fs.Parse(args); err != nil {
			return err
		}
		items, pages, err := runList(ctx, svc.List, lf)
		if err != nil {
			return err
		}
		t := output.Table{
			Header: []string{"ID", "", "TEXT", "LINK", "READ"},
			Footer: pageFooter(svc.List.Filter().Page(), pages, svc.List.Total()) +
				fmt.Sprintf(", %d unread", svc.UnreadCount()),
		}
		for _, n := range items {
			r := service.RenderNotification(n)
			t.Rows = append(t.Rows, []string{
				strconv.FormatUint(uint64(n.ID), 10),
				r.Icon,
				truncate(r.Text, 60),
				r.Link,
				strconv.FormatBool(n.Read),
			})
		}
		return output.Print(t, *lf.format)
	case "read":
		if len(args) != 1 {
			return errors.New("usage: makernet notifications read <id>")
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return svc.MarkRead(ctx, id)
	case "read-all":
		return svc.MarkAllRead(ctx)
	default:
		return fmt.Errorf("unknown notifications subcommand %q", sub)
	}
}

func (a *app) cmdMessages(args []string) error {
	ctx := context.Background()
	if err := a.loadUser(ctx); err != nil {
		return err
	}
	svc := service.NewMessageService(a.client, a.cfg.PageSize)

	sub := "list"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list":
		fs := flag.NewFlagSet("messages", flag.ContinueOnError)
		lf := addListFlags(fs, a.cfg.PageSize)
		if err := fs.Parse(args); err != nil {
			return err
		}
		items, pages, err := runList(ctx, svc.Conversations, lf)
		if err != nil {
			return err
		}
		t := output.Table{
			Header: []string{"ID", "WITH", "UNREAD", "UPDATED"},
			Footer: pageFooter(svc.Conversations.Filter().Page(), pages, svc.Conversations.Total()),
		}
		for _, c := range items {
			t.Rows = append(t.Rows, []string{
				strconv.FormatUint(uint64(c.ID), 10),
				c.Participant.Username,
				strconv.Itoa(c.UnreadCount),
				c.UpdatedAt.Format(time.RFC3339),
			})
		}
		return output.Print(t, *lf.format)
	case "open":
		if len(args) != 1 {
			return errors.New("usage: makernet messages open <id>")
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		conv, err := svc.Open(ctx, id)
		if err != nil {
			return err
		}
		for _, m := range conv.Messages {
			who := conv.Participant.Username
			if m.SenderID == a.sess.UserID() {
				who = "me"
			}
			fmt.Printf("[%s] %s: %s\n", m.InsertedAt.Format("15:04"), who, m.Body)
		}
		return nil
	case "send":
		if len(args) < 2 {
			return errors.New("usage: makernet messages send <id> <body...>")
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		_, err = svc.Send(ctx, id, strings.Join(args[1:], " "))
		return err
	case "watch":
		return a.watchMessages(ctx, svc)
	default:
		return fmt.Errorf("unknown messages subcommand %q", sub)
	}
}

// watchMessages follows the realtime stream until interrupted. No automatic
// reconnect: a dropped stream ends the command.
func (a *app) watchMessages(ctx context.Context, svc *service.MessageService) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	stream, err := realtime.Dial(ctx, a.client.BaseURL(), a.sess.Token)
	if err != nil {
		return err
	}
	defer stream.Close()

	fmt.Println("watching for messages (ctrl-c to stop)")
	return stream.Run(ctx, func(ev realtime.Event) {
		svc.HandleIncoming(ev.ConversationID, ev.Message)
		fmt.Printf("[conversation %d] %s\n", ev.ConversationID, ev.Message.Body)
	})
}

func (a *app) cmdAdmin(args []string) error {
	ctx := context.Background()
	if err := a.loadUser(ctx); err != nil {
		return err
	}
	if err := a.sess.RequireAdmin(); err != nil {
		return err
	}
	svc := service.NewAdminService(a.client, a.cfg.PageSize)

	if len(args) == 0 {
		return errors.New("usage: makernet admin <reports|review|dismiss|resolve|users|verify|delete-user> ...")
	}
	sub, args := args[0], args[1:]

	switch sub {
	case "reports":
		fs := flag.NewFlagSet("admin reports", flag.ContinueOnError)
		lf := addListFlags(fs, a.cfg.PageSize)
		if err := fs.Parse(args); err != nil {
			return err
		}
		items, pages, err := runList(ctx, svc.Reports, lf)
		if err != nil {
			return err
		}
		t := output.Table{
			Header: []string{"ID", "REPORTER", "TARGET", "STATUS", "FILED"},
			Footer: pageFooter(svc.Reports.Filter().Page(), pages, svc.Reports.Total()),
		}
		for _, r := range items {
			t.Rows = append(t.Rows, []string{
				strconv.FormatUint(uint64(r.ID), 10),
				r.Reporter.Username,
				fmt.Sprintf("%s/%d", r.ReportableType, r.ReportableID),
				string(r.Status),
				r.InsertedAt.Format("2006-01-02"),
			})
		}
		return output.Print(t, *lf.format)
	case "review", "dismiss", "resolve":
		if len(args) != 1 {
			return fmt.Errorf("usage: makernet admin %s <report-id>", sub)
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		// The transition guard needs the report's current status in the
		// local page.
		svc.Reports.SetFilter(ctx, func(f *view.Filter) { f.Limit = a.cfg.PageSize })
		switch sub {
		case "review":
			return svc.MarkReviewed(ctx, id)
		case "dismiss":
			return svc.Dismiss(ctx, id)
		default:
			return svc.Resolve(ctx, id)
		}
	case "users":
		fs := flag.NewFlagSet("admin users", flag.ContinueOnError)
		lf := addListFlags(fs, a.cfg.PageSize)
		if err := fs.Parse(args); err != nil {
			return err
		}
		items, pages, err := runList(ctx, svc.Users, lf)
		if err != nil {
			return err
		}
		t := output.Table{
			Header: []string{"ID", "USERNAME", "EMAIL", "VERIFIED", "JOINED"},
			Footer: pageFooter(svc.Users.Filter().Page(), pages, svc.Users.Total()),
		}
		for _, u := range items {
			t.Rows = append(t.Rows, []string{
				strconv.FormatUint(uint64(u.ID), 10),
				u.Username,
				u.Email,
				strconv.FormatBool(u.IsVerified),
				u.InsertedAt.Format("2006-01-02"),
			})
		}
		return output.Print(t, *lf.format)
	case "verify":
		if len(args) != 1 {
			return errors.New("usage: makernet admin verify <user-id>")
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return svc.ToggleVerified(ctx, id)
	case "delete-user":
		if len(args) != 1 {
			return errors.New("usage: makernet admin delete-user <user-id>")
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("deleting user %d permanently; this cannot be undone\n", id)
		return svc.DeleteUser(ctx, id)
	default:
		return fmt.Errorf("unknown admin subcommand %q", sub)
	}
}

func (a *app) cmdAccount(args []string) error {
	ctx := context.Background()
	if err := a.loadUser(ctx); err != nil {
		return err
	}
	svc := service.NewAccountService(a.client)

	sub := "show"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "show":
		return output.Print(a.sess.User, "json")
	case "update":
		fs := flag.NewFlagSet("account update", flag.ContinueOnError)
		displayName := fs.String("display-name", "", "Display name")
		bio := fs.String("bio", "", "Profile bio")
		avatar := fs.String("avatar", "", "Avatar URL")
		if err := fs.Parse(args); err != nil {
			return err
		}
		update := api.ProfileUpdate{
			DisplayName: optString(*displayName),
			Bio:         optString(*bio),
			AvatarURL:   optString(*avatar),
		}
		user, err := svc.UpdateProfile(ctx, update)
		if err != nil {
			return err
		}
		fmt.Printf("profile updated for %s\n", user.Username)
		return nil
	case "username":
		if len(args) != 1 {
			return errors.New("usage: makernet account username <candidate>")
		}
		candidate := args[0]
		checker := svc.NewUsernameChecker(a.sess.User.Username, view.UsernameDebounce)
		defer checker.Stop()
		checker.Input(ctx, candidate)
		if err := checker.Err(); err != nil {
			return err
		}
		// Checking stays true from scheduling until the availability
		// result lands, so polling it covers the debounce and the round
		// trip.
		deadline := time.Now().Add(time.Duration(a.cfg.RequestTimeout) * time.Second)
		for checker.Checking() && time.Now().Before(deadline) {
			time.Sleep(50 * time.Millisecond)
		}
		if err := checker.Err(); err != nil {
			return err
		}
		if !checker.CanSave() {
			return errors.New("username check did not finish; try again")
		}
		update := api.ProfileUpdate{Username: &candidate}
		user, err := svc.UpdateProfile(ctx, update)
		if err != nil {
			return err
		}
		fmt.Printf("username changed to %s\n", user.Username)
		return nil
	default:
		return fmt.Errorf("unknown account subcommand %q", sub)
	}
}

func (a *app) cmdBilling(args []string) error {
	ctx := context.Background()
	if err := a.loadUser(ctx); err != nil {
		return err
	}
	svc := service.NewBillingService(a.client)

	sub := "status"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "status":
		status, err := svc.Status(ctx)
		if err != nil {
			return err
		}
		return output.Print(status, "json")
	case "upgrade":
		url, err := svc.CheckoutURL(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("open this URL to upgrade:\n%s\n", url)
		return nil
	case "portal":
		url, err := svc.PortalURL(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("open this URL to manage billing:\n%s\n", url)
		return nil
	default:
		return fmt.Errorf("unknown billing subcommand %q", sub)
	}
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func optInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func optString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
