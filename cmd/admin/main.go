// cmd/admin/main.go
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	redis_a "github.com/GGT-dev-tech/auctionos/internal/adapters/redis_adapter"
	"github.com/GGT-dev-tech/auctionos/internal/adapters/restapi"
	"github.com/GGT-dev-tech/auctionos/internal/adapters/session"
	"github.com/GGT-dev-tech/auctionos/internal/adapters/storage"
	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
	"github.com/GGT-dev-tech/auctionos/internal/core/ports"
	"github.com/GGT-dev-tech/auctionos/internal/core/services"
	"github.com/GGT-dev-tech/auctionos/internal/pkg/config"
	"github.com/GGT-dev-tech/auctionos/internal/pkg/logger"
	"github.com/GGT-dev-tech/auctionos/internal/workers"
)

const usage = `usage: admin <command> [flags]

commands:
  login          authenticate and store the session
  logout         clear the stored session
  me             show the authenticated profile
  list           list properties with optional filters
  wizard         create or edit a property step by step
  bulk-status    set the status of several properties at once
  bulk-delete    delete several properties at once
  delete         delete one property
  enrich         pull external data into a property record
  report         generate the property PDF report and print its URL
  upload         attach a media file to a property
  auctions       list auction events or the calendar aggregation
  inventory      list inventory folders and items
  finance        show company finance stats and transactions
  import         stage a CSV/XLSX/PDF file and enqueue an import job
  status         show import job progress
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	slogger := logger.SetupLogger("info", "text")
	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)

	app, err := newApp(cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize", slog.String("error", err.Error()))
		os.Exit(1)
	}

	command := os.Args[1]
	ctx := logger.WithCommand(context.Background(), command)
	args := os.Args[2:]

	if err := app.run(ctx, command, args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app wires the clients the commands share. The REST clients all ride
// one facade bound to the file-backed session store.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	sessions  *session.FileStore
	users     *restapi.UserClient
	props     *restapi.PropertyClient
	auctions  *restapi.AuctionClient
	inventory *restapi.InventoryClient
	finance   *restapi.FinanceClient
	media     *restapi.MediaClient
	stdin     *bufio.Reader
}

func newApp(cfg *config.Config, slogger *slog.Logger) (*app, error) {
	sessions, err := session.NewFileStore(cfg.Session.Path, slogger)
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}

	client, err := restapi.NewClient(restapi.Config{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
	}, sessions, slogger)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		logger:    slogger,
		sessions:  sessions,
		users:     restapi.NewUserClient(client, slogger),
		props:     restapi.NewPropertyClient(client, slogger),
		auctions:  restapi.NewAuctionClient(client, slogger),
		inventory: restapi.NewInventoryClient(client, slogger),
		finance:   restapi.NewFinanceClient(client, slogger),
		media:     restapi.NewMediaClient(client, slogger),
		stdin:     bufio.NewReader(os.Stdin),
	}, nil
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.sessions.Clear()
	case "me":
		return a.me(ctx)
	case "list":
		return a.list(ctx, args)
	case "wizard":
		return a.wizard(ctx, args)
	case "bulk-status":
		return a.bulk(ctx, args, ports.BulkUpdateStatus)
	case "bulk-delete":
		return a.bulk(ctx, args, ports.BulkDelete)
	case "delete":
		return a.deleteOne(ctx, args)
	case "enrich":
		return a.enrich(ctx, args)
	case "report":
		return a.report(ctx, args)
	case "upload":
		return a.uploadMedia(ctx, args)
	case "auctions":
		return a.listAuctions(ctx, args)
	case "inventory":
		return a.listInventory(ctx, args)
	case "finance":
		return a.showFinance(ctx, args)
	case "import":
		return a.enqueueImport(ctx, args)
	case "status":
		return a.importStatus(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "account email")
	password := fs.String("password", "", "account password (prompted when omitted)")
	fs.Parse(args)

	if *username == "" {
		*username = a.prompt("email: ")
	}
	if *password == "" {
		*password = a.prompt("password: ")
	}

	token, err := a.users.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	if err := a.sessions.Save(domain.Session{Token: token}); err != nil {
		return err
	}

	// Cache the profile alongside the token so `me` works offline.
	user, err := a.users.Me(ctx)
	if err != nil {
		a.logger.Warn("logged in but profile fetch failed", slog.String("error", err.Error()))
		return nil
	}
	if err := a.sessions.Save(domain.Session{Token: token, User: user}); err != nil {
		return err
	}

	fmt.Printf("logged in as %s\n", user.Email)
	return nil
}

func (a *app) me(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	user, err := a.users.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s  role=%s  company=%d\n", user.ID, user.Email, user.Role, user.CompanyID)
	if exp, ok := a.sessions.Expiry(); ok {
		fmt.Printf("session expires %s\n", exp.Format(time.RFC3339))
	}
	return nil
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	keyword := fs.String("keyword", "", "free-text search")
	state := fs.String("state", "", "state code")
	county := fs.String("county", "", "county name")
	status := fs.String("status", "", "property status")
	ptype := fs.String("type", "", "property type")
	minDate := fs.String("min-date", "", "auction date lower bound (2006-01-02)")
	maxDate := fs.String("max-date", "", "auction date upper bound (2006-01-02)")
	limit := fs.Int("limit", 50, "page size")
	page := fs.Int("page", 0, "page number, zero-based")
	fs.Parse(args)

	if err := a.requireSession(); err != nil {
		return err
	}

	ctl := services.NewListController(a.props.List, services.ListConfig{PageSize: *limit}, a.logger)
	done := make(chan services.Snapshot[domain.Property], 1)
	ctl.SetOnChange(func(snap services.Snapshot[domain.Property]) {
		if snap.State != services.StateLoading {
			select {
			case done <- snap:
			default:
			}
		}
	})

	if *page > 0 {
		ctl.SetPage(*page * *limit)
	}
	ctl.Start(ctx, domain.PropertyFilter{
		Keyword:      *keyword,
		State:        *state,
		County:       *county,
		Status:       domain.PropertyStatus(*status),
		PropertyType: domain.PropertyType(*ptype),
		MinDate:      *minDate,
		MaxDate:      *maxDate,
	})

	select {
	case snap := <-done:
		return printSnapshot(snap)
	case <-time.After(a.cfg.API.Timeout + time.Second):
		return fmt.Errorf("timed out waiting for the property list")
	}
}

func printSnapshot(snap services.Snapshot[domain.Property]) error {
	switch snap.State {
	case services.StateError:
		return snap.Err
	case services.StateEmpty:
		fmt.Println("no properties match")
		return nil
	}
	for _, p := range snap.Items {
		due := "-"
		if p.Details != nil && p.Details.AmountDue != nil {
			due = "$" + p.Details.AmountDue.StringFixed(2)
		}
		fmt.Printf("%-36s  %-28s  %-9s  %s\n", p.ID, p.SmartTag, p.Status, due)
	}
	fmt.Printf("%d properties\n", len(snap.Items))
	return nil
}

func (a *app) wizard(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("wizard", flag.ExitOnError)
	id := fs.String("id", "", "edit an existing property instead of creating one")
	fs.Parse(args)

	if err := a.requireSession(); err != nil {
		return err
	}

	var w *services.PropertyWizard
	var err error
	if *id != "" {
		w, err = services.LoadPropertyWizard(ctx, a.props, *id, a.logger)
		if err != nil {
			return err
		}
	} else {
		w = services.NewPropertyWizard(a.props, a.logger)
	}

	finished := make(chan string, 1)
	cancelled := make(chan struct{}, 1)
	w.SetOnComplete(func(propertyID string) { finished <- propertyID })
	w.SetOnCancel(func() { cancelled <- struct{}{} })

	for {
		fmt.Printf("\n-- step %d/5: %s --\n", w.Step(), w.Step())
		if err := a.promptStep(w); err != nil {
			return err
		}

		switch a.prompt("[n]ext, [b]ack, [s]ave draft, [q]uit: ") {
		case "b":
			if err := w.Retreat(); err != nil {
				return err
			}
		case "s":
			if err := w.SaveDraft(ctx); err != nil {
				return err
			}
			fmt.Printf("draft saved as %s\n", w.PersistedID())
		case "q":
			return nil
		default:
			if err := w.Advance(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
		}

		select {
		case propertyID := <-finished:
			fmt.Printf("property saved: %s\n", propertyID)
			return nil
		case <-cancelled:
			fmt.Println("wizard cancelled")
			return nil
		default:
		}
	}
}

// promptStep collects the fields belonging to the wizard's current step.
// Empty answers leave the draft untouched.
func (a *app) promptStep(w *services.PropertyWizard) error {
	var partial domain.PropertyDraft

	switch w.Step() {
	case services.StepBasicInfo:
		partial.ParcelID = a.prompt("parcel id: ")
		partial.State = strings.ToUpper(a.prompt("state (2 letters): "))
		partial.County = a.prompt("county: ")
		partial.Address = a.prompt("address: ")
		partial.City = a.prompt("city: ")
		partial.ZipCode = a.prompt("zip: ")
		partial.PropertyType = domain.PropertyType(a.prompt("type (residential/commercial/land/...): "))
	case services.StepFinancials:
		details := &domain.PropertyDetails{}
		if v := a.promptDecimal("amount due: "); v != nil {
			details.AmountDue = v
		}
		if v := a.promptDecimal("assessed value: "); v != nil {
			details.AssessedValue = v
		}
		if v := a.promptDecimal("max bid: "); v != nil {
			details.MaxBid = v
		}
		partial.Details = details
	case services.StepMedia:
		fmt.Printf("property persisted as %s; upload media via the web surface\n", w.PersistedID())
	case services.StepAuction:
		auction := &domain.AuctionDetails{
			AuctionName: a.prompt("auction name: "),
			AuctionDate: a.prompt("auction date (2006-01-02): "),
			Location:    a.prompt("location: "),
		}
		partial.AuctionDetails = auction
	case services.StepNotes:
		partial.Notes = a.prompt("notes: ")
	}

	return w.Update(partial)
}

func (a *app) bulk(ctx context.Context, args []string, action ports.BulkAction) error {
	fs := flag.NewFlagSet("bulk", flag.ExitOnError)
	ids := fs.String("ids", "", "comma-separated property ids")
	status := fs.String("status", "", "target status (bulk-status only)")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	fs.Parse(args)

	if err := a.requireSession(); err != nil {
		return err
	}
	idList := splitIDs(*ids)
	if len(idList) == 0 {
		return fmt.Errorf("-ids is required")
	}
	if action == ports.BulkUpdateStatus && *status == "" {
		return fmt.Errorf("-status is required")
	}

	visible, err := a.fetchByID(ctx, idList)
	if err != nil {
		return err
	}

	confirm := func(act ports.BulkAction, count int) bool {
		if *yes {
			return true
		}
		answer := a.prompt(fmt.Sprintf("%s %d properties? [y/N]: ", act, count))
		return strings.EqualFold(answer, "y")
	}

	ctl := services.NewBulkController(a.props, confirm, func() {}, a.logger)
	ctl.SetVisible(visible)
	ctl.ToggleAll(true)

	if err := ctl.Apply(ctx, action, domain.PropertyStatus(*status)); err != nil {
		return err
	}
	fmt.Printf("%s applied to %d properties\n", action, len(visible))
	return nil
}

func (a *app) deleteOne(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "property id")
	fs.Parse(args)

	if err := a.requireSession(); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	property, err := a.props.Get(ctx, *id)
	if err != nil {
		return err
	}

	ctl := services.NewBulkController(a.props, nil, func() {}, a.logger)
	ctl.SetVisible([]domain.Property{*property})
	if err := ctl.DeleteOne(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("deleted %s (%s)\n", property.ID, property.SmartTag)
	return nil
}

func (a *app) enrich(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("enrich", flag.ExitOnError)
	id := fs.String("id", "", "property id")
	fs.Parse(args)

	if err := a.requireSession(); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	property, err := a.props.Enrich(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("enriched %s (%s)\n", property.ID, property.SmartTag)
	if property.OwnerName != "" {
		fmt.Printf("owner: %s\n", property.OwnerName)
	}
	return nil
}

func (a *app) report(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	id := fs.String("id", "", "property id")
	fs.Parse(args)

	if err := a.requireSession(); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	url, err := a.props.Report(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Println(url)
	return nil
}

func (a *app) uploadMedia(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	id := fs.String("id", "", "property id")
	file := fs.String("file", "", "file to attach")
	fs.Parse(args)

	if err := a.requireSession(); err != nil {
		return err
	}
	if *id == "" || *file == "" {
		return fmt.Errorf("-id and -file are required")
	}

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer f.Close()

	media, err := a.media.Upload(ctx, *id, filepath.Base(*file), f)
	if err != nil {
		return err
	}
	for _, m := range media {
		fmt.Printf("uploaded %s -> %s\n", m.FileName, m.URL)
	}
	return nil
}

func (a *app) listAuctions(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("auctions", flag.ExitOnError)
	state := fs.String("state", "", "state code")
	county := fs.String("county", "", "county name")
	month := fs.Int("month", 0, "calendar month (1-12)")
	year := fs.Int("year", 0, "calendar year")
	calendar := fs.Bool("calendar", false, "show the per-day calendar aggregation")
	fs.Parse(args)

	if err := a.requireSession(); err != nil {
		return err
	}

	filter := domain.AuctionFilter{
		State:  *state,
		County: *county,
		Month:  *month,
		Year:   *year,
	}

	if *calendar {
		buckets, err := a.auctions.Calendar(ctx, filter)
		if err != nil {
			return err
		}
		for _, b := range buckets {
			fmt.Printf("%s  %d events  %d properties\n", b.Date, len(b.Events), b.PropertyCount)
			for _, e := range b.Events {
				fmt.Printf("    %s  %s, %s\n", e.Name, e.County, e.State)
			}
		}
		return nil
	}

	events, err := a.auctions.List(ctx, filter, domain.Page{})
	if err != nil {
		return err
	}
	for _, e := range events {
		fmt.Printf("%-36s  %s  %-20s %s, %s\n", e.ID, e.AuctionDate, e.Name, e.County, e.State)
	}
	return nil
}

func (a *app) listInventory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("inventory", flag.ExitOnError)
	folder := fs.String("folder", "", "folder id")
	status := fs.String("status", "", "item status filter")
	folders := fs.Bool("folders", false, "list folders instead of items")
	fs.Parse(args)

	if err := a.requireSession(); err != nil {
		return err
	}

	if *folders {
		tree, err := a.inventory.Folders(ctx)
		if err != nil {
			return err
		}
		printFolders(tree, 0)
		return nil
	}

	if *status != "" && !domain.ValidItemStatus(domain.ItemStatus(*status)) {
		return fmt.Errorf("unknown item status %q", *status)
	}
	items, err := a.inventory.Items(ctx, domain.InventoryFilter{
		FolderID: *folder,
		Status:   domain.ItemStatus(*status),
	})
	if err != nil {
		return err
	}
	for _, item := range items {
		tag := item.PropertyID
		if item.Property != nil {
			tag = item.Property.SmartTag
		}
		fmt.Printf("%-36s  %-14s  %s\n", item.ID, item.Status, tag)
	}
	return nil
}

func printFolders(folders []domain.InventoryFolder, depth int) {
	for _, f := range folders {
		marker := ""
		if f.IsSystem {
			marker = "  [system]"
		}
		fmt.Printf("%s%s  %s%s\n", strings.Repeat("  ", depth), f.ID, f.Name, marker)
		printFolders(f.Children, depth+1)
	}
}

func (a *app) showFinance(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("finance", flag.ExitOnError)
	company := fs.Int("company", 0, "company id (defaults to the session's company)")
	deposit := fs.String("deposit", "", "amount to deposit instead of showing stats")
	description := fs.String("description", "", "deposit description")
	fs.Parse(args)

	if err := a.requireSession(); err != nil {
		return err
	}
	if *company == 0 {
		if sess, err := a.sessions.Session(); err == nil && sess.User != nil {
			*company = sess.User.CompanyID
		}
	}
	if *company == 0 {
		return fmt.Errorf("-company is required")
	}

	if *deposit != "" {
		amount, err := decimal.NewFromString(*deposit)
		if err != nil {
			return fmt.Errorf("invalid deposit amount %q: %w", *deposit, err)
		}
		tx, err := a.finance.Deposit(ctx, domain.DepositRequest{
			CompanyID:   *company,
			Amount:      amount,
			Description: *description,
		})
		if err != nil {
			return err
		}
		fmt.Printf("deposited $%s (transaction %s)\n", tx.Amount.StringFixed(2), tx.ID)
		return nil
	}

	stats, err := a.finance.Stats(ctx, *company)
	if err != nil {
		return err
	}
	fmt.Printf("balance   $%s\n", stats.TotalBalance.StringFixed(2))
	fmt.Printf("invested  $%s\n", stats.TotalInvested.StringFixed(2))
	fmt.Printf("expenses  $%s\n", stats.TotalExpenses.StringFixed(2))
	fmt.Printf("available $%s\n", stats.AvailableLimit.StringFixed(2))

	transactions, err := a.finance.Transactions(ctx, *company)
	if err != nil {
		return err
	}
	for _, tx := range transactions {
		fmt.Printf("%s  %-8s  $%s  %s\n",
			tx.CreatedAt.Format("2006-01-02"), tx.Type, tx.Amount.StringFixed(2), tx.Description)
	}
	return nil
}

func (a *app) enqueueImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "CSV, XLSX, or PDF source file")
	state := fs.String("state", "", "state code applied to every PDF row")
	county := fs.String("county", "", "county applied to every PDF row")
	auctionName := fs.String("auction-name", "", "auction name applied to every PDF row")
	auctionDate := fs.String("auction-date", "", "auction date applied to every PDF row")
	fs.Parse(args)

	if *file == "" {
		return fmt.Errorf("-file is required")
	}
	info, err := os.Stat(*file)
	if err != nil {
		return fmt.Errorf("source file: %w", err)
	}
	if maxBytes := int64(a.cfg.Import.MaxSizeMB) << 20; info.Size() > maxBytes {
		return fmt.Errorf("source file exceeds the %dMB import limit", a.cfg.Import.MaxSizeMB)
	}

	sources, err := a.initSources(ctx)
	if err != nil {
		return err
	}
	data, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer data.Close()

	source, err := sources.Stage(ctx, info.Name(), data)
	if err != nil {
		return fmt.Errorf("stage source file: %w", err)
	}

	payload := workers.ImportJobPayload{
		JobID:       uuid.NewString(),
		Source:      source,
		FileName:    info.Name(),
		State:       strings.ToUpper(*state),
		County:      *county,
		AuctionName: *auctionName,
		AuctionDate: *auctionDate,
	}
	if sess, err := a.sessions.Session(); err == nil && sess.User != nil {
		payload.UserID = sess.User.ID
	}

	task, err := workers.NewImportTask(payload)
	if err != nil {
		return err
	}

	progress, closeRedis, err := a.initProgress(ctx)
	if err != nil {
		return err
	}
	defer closeRedis()

	now := time.Now().UTC()
	if err := progress.Put(ctx, ports.ImportProgress{
		JobID:     payload.JobID,
		State:     ports.JobQueued,
		Source:    source,
		StartedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("record job: %w", err)
	}

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     a.cfg.Asynq.RedisAddr,
		Password: a.cfg.Asynq.RedisPassword,
		DB:       a.cfg.Asynq.RedisDB,
	})
	defer client.Close()

	queued, err := client.Enqueue(task, asynq.Queue("imports"), asynq.MaxRetry(a.cfg.Asynq.RetryMax))
	if err != nil {
		return fmt.Errorf("enqueue import: %w", err)
	}

	fmt.Printf("import queued: job=%s task=%s\n", payload.JobID, queued.ID)
	fmt.Printf("follow with: admin status -job %s -watch\n", payload.JobID)
	return nil
}

func (a *app) importStatus(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	job := fs.String("job", "", "import job id")
	watch := fs.Bool("watch", false, "poll until the job finishes")
	fs.Parse(args)

	if *job == "" {
		return fmt.Errorf("-job is required")
	}

	progress, closeRedis, err := a.initProgress(ctx)
	if err != nil {
		return err
	}
	defer closeRedis()

	for {
		p, err := progress.Get(ctx, *job)
		if err != nil {
			return err
		}
		fmt.Printf("%s  total=%d imported=%d failed=%d", p.State, p.Total, p.Imported, p.Failed)
		if p.Error != "" {
			fmt.Printf("  error=%s", p.Error)
		}
		fmt.Println()

		if !*watch || p.State == ports.JobCompleted || p.State == ports.JobFailed {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
}

func (a *app) initSources(ctx context.Context) (storage.SourceStore, error) {
	if a.cfg.Import.UseS3 {
		return storage.NewS3Source(ctx, &storage.S3Config{
			Region:          a.cfg.AWS.Region,
			Bucket:          a.cfg.AWS.S3Bucket,
			AccessKeyID:     a.cfg.AWS.AccessKeyID,
			SecretAccessKey: a.cfg.AWS.SecretAccessKey,
			Endpoint:        a.cfg.AWS.S3Endpoint,
			UsePathStyle:    a.cfg.AWS.UsePathStyle,
			StagingPrefix:   a.cfg.AWS.StagingPrefix,
			ArchivePrefix:   a.cfg.AWS.ArchivePrefix,
			TempDir:         a.cfg.Import.TempDir,
		}, a.logger)
	}
	return storage.NewLocalSource(a.cfg.Import.LocalDir, a.logger)
}

func (a *app) initProgress(ctx context.Context) (*redis_a.ProgressStore, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     a.cfg.GetRedisAddress(),
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
	store := redis_a.NewProgressStore(client, a.cfg.Redis.TTL, a.logger)
	if err := store.Ping(ctx); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("redis: %w", err)
	}
	return store, func() { client.Close() }, nil
}

// requireSession fails fast when no token is stored or the stored token
// has expired, instead of sending a request that is guaranteed a 401.
func (a *app) requireSession() error {
	if _, err := a.sessions.Session(); err != nil {
		return fmt.Errorf("%w: run `admin login` first", err)
	}
	if exp, ok := a.sessions.Expiry(); ok && time.Now().After(exp) {
		return fmt.Errorf("session expired at %s: run `admin login` again", exp.Format(time.RFC3339))
	}
	return nil
}

func (a *app) fetchByID(ctx context.Context, ids []string) ([]domain.Property, error) {
	properties := make([]domain.Property, 0, len(ids))
	for _, id := range ids {
		p, err := a.props.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", id, err)
		}
		properties = append(properties, *p)
	}
	return properties, nil
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	line, _ := a.stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

func (a *app) promptDecimal(label string) *decimal.Decimal {
	raw := a.prompt(label)
	if raw == "" {
		return nil
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimPrefix(raw, "$"), ",", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignoring unparseable amount %q\n", raw)
		return nil
	}
	return &v
}

func splitIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
