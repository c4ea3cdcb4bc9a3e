// Package workspace owns the tool's single in-memory state and runs the
// generate and export actions against it.
//
// Every action takes the current State, computes a new one and swaps it in
// under the controller's mutex. A failed run never touches the previous
// record set.
package workspace

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dalemusser/vendorgrid/internal/cnpj"
	"github.com/dalemusser/vendorgrid/internal/intake"
	"github.com/dalemusser/vendorgrid/internal/notify"
	"github.com/dalemusser/vendorgrid/internal/records"
	"github.com/dalemusser/vendorgrid/pantry/i18n"
	"github.com/dalemusser/vendorgrid/pantry/validate"
	"go.uber.org/zap"
)

// DefaultActions are offered when no actions are configured.
var DefaultActions = []string{"ADD", "REMOVE", "UPDATE"}

// Run outcomes, used as metric labels.
const (
	OutcomeOK                 = "ok"
	OutcomeMissingIdentifiers = "missing_identifiers"
	OutcomeMissingEmails      = "missing_emails"
	OutcomeInvalidAction      = "invalid_action"
	OutcomeNoIdentifiers      = "no_valid_identifiers"
	OutcomeNoEmails           = "no_valid_emails"
)

// Rejected entry kinds, used as metric labels.
const (
	KindIdentifier = "identifier"
	KindEmail      = "email"
)

// Recorder receives domain counters. metrics.Domain implements it.
type Recorder interface {
	RunFinished(outcome string, records int)
	EntriesRejected(kind string, n int)
	FileExported(format string)
}

type nopRecorder struct{}

func (nopRecorder) RunFinished(string, int)     {}
func (nopRecorder) EntriesRejected(string, int) {}
func (nopRecorder) FileExported(string)         {}

// Form is what the user submitted.
type Form struct {
	Identifiers string `form:"cnpjs" json:"cnpjs"`
	Emails      string `form:"emails" json:"emails"`
	Action      string `form:"action" json:"action" validate:"required,action"`
	VendorName  string `form:"vendorName" json:"vendorName"`
	Country     string `form:"country" json:"country"`
}

// State is the whole application state: the current record set and the
// last submitted form.
type State struct {
	Records records.Set
	Form    Form
}

// CanExport reports whether there is anything to download.
func (s State) CanExport() bool { return !s.Records.Empty() }

// Result describes one generate run.
type Result struct {
	Outcome string
	// Records is the new set; zero when the run was aborted.
	Records records.Set
	// Notices holds every banner shown during the run, in order. Only the
	// last one stays on display.
	Notices []notify.Banner
	// Identifiers and Emails are the partitions computed for the run; both
	// are zero when a blank-input guard aborted it.
	Identifiers intake.Partition
	Emails      intake.Partition
}

// OK reports whether the run produced a new record set.
func (r Result) OK() bool { return r.Outcome == OutcomeOK }

// Options configures a Controller.
type Options struct {
	VendorID    string
	Actions     []string
	CSVFilename string
	TSVFilename string

	// VendorName and Country fill blank form fields. When empty, the
	// records package defaults apply.
	VendorName string
	Country    string

	Notifier *notify.Notifier
	Messages *i18n.Bundle
	Metrics  Recorder
	Logger   *zap.Logger
}

// Controller serializes access to the single State.
type Controller struct {
	mu    sync.Mutex
	state State

	vendorID   string
	vendorName string
	country    string
	actions    []string
	files      map[Format]string

	notifier  *notify.Notifier
	messages  *i18n.Bundle
	validator *validate.Validator
	metrics   Recorder
	logger    *zap.Logger
}

// New builds a Controller with an empty state.
func New(opts Options) (*Controller, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.New(notify.DefaultTTL, opts.Logger)
	}
	if opts.Messages == nil {
		opts.Messages = NewMessages("pt-BR")
	}
	if opts.Metrics == nil {
		opts.Metrics = nopRecorder{}
	}
	if len(opts.Actions) == 0 {
		opts.Actions = DefaultActions
	}
	if opts.VendorID == "" {
		opts.VendorID = records.DefaultVendorID
	}
	if opts.CSVFilename == "" {
		opts.CSVFilename = DefaultCSVFilename
	}
	if opts.TSVFilename == "" {
		opts.TSVFilename = DefaultTSVFilename
	}

	v := validate.New()
	if err := v.RegisterSet("action", opts.Actions); err != nil {
		return nil, fmt.Errorf("register action rule: %w", err)
	}

	return &Controller{
		state:      State{Form: Form{Action: opts.Actions[0]}},
		vendorID:   opts.VendorID,
		vendorName: strings.TrimSpace(opts.VendorName),
		country:    strings.TrimSpace(opts.Country),
		actions:    append([]string(nil), opts.Actions...),
		files:      map[Format]string{FormatCSV: opts.CSVFilename, FormatTSV: opts.TSVFilename},
		notifier:   opts.Notifier,
		messages:   opts.Messages,
		validator:  v,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
	}, nil
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Actions returns the selectable actions in display order.
func (c *Controller) Actions() []string {
	return append([]string(nil), c.actions...)
}

// Banner returns the banner on display, if any.
func (c *Controller) Banner() (notify.Banner, bool) {
	return c.notifier.Current()
}

// Messages returns the controller's translation bundle.
func (c *Controller) Messages() *i18n.Bundle {
	return c.messages
}

// Generate validates f, cross-joins the valid entries and replaces the
// record set on success. Problems with the input are reported as banners
// in locale; they never surface as errors.
func (c *Controller) Generate(locale string, f Form) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, res := c.generate(c.state, locale, f)
	c.state = next

	c.metrics.RunFinished(res.Outcome, res.Records.Len())
	if n := len(res.Identifiers.Invalid); n > 0 {
		c.metrics.EntriesRejected(KindIdentifier, n)
	}
	if n := len(res.Emails.Invalid); n > 0 {
		c.metrics.EntriesRejected(KindEmail, n)
	}
	return res
}

func (c *Controller) generate(prev State, locale string, f Form) (State, Result) {
	next := State{Records: prev.Records, Form: f}
	var res Result

	c.notifier.Clear()
	fail := func(outcome, msg string) (State, Result) {
		res.Outcome = outcome
		res.Notices = append(res.Notices, c.notifier.Error(msg))
		c.logger.Info("generate aborted",
			zap.String("outcome", outcome),
			zap.Int("valid_identifiers", len(res.Identifiers.Valid)),
			zap.Int("valid_emails", len(res.Emails.Valid)))
		return next, res
	}

	if strings.TrimSpace(f.Identifiers) == "" {
		return fail(OutcomeMissingIdentifiers, c.t(locale, MsgIdentifiersRequired))
	}
	if strings.TrimSpace(f.Emails) == "" {
		return fail(OutcomeMissingEmails, c.t(locale, MsgEmailsRequired))
	}

	res.Identifiers = intake.Identifiers(f.Identifiers)
	res.Emails = intake.Emails(f.Emails)

	if bad := res.Identifiers.Invalid; len(bad) > 0 {
		res.Notices = append(res.Notices,
			c.notifier.Error(c.t(locale, MsgIdentifiersInvalid, strings.Join(bad, ", "))))
		c.logger.Warn("invalid identifiers skipped", zap.Int("count", len(bad)))
	}
	if bad := res.Emails.Invalid; len(bad) > 0 {
		res.Notices = append(res.Notices,
			c.notifier.Error(c.t(locale, MsgEmailsInvalid, strings.Join(bad, ", "))))
		c.logger.Warn("invalid emails skipped", zap.Int("count", len(bad)))
	}

	if len(res.Identifiers.Valid) == 0 {
		return fail(OutcomeNoIdentifiers, c.t(locale, MsgIdentifiersNone))
	}
	if len(res.Emails.Valid) == 0 {
		return fail(OutcomeNoEmails, c.t(locale, MsgEmailsNone))
	}

	// Vendor name and country are free text; only the action is checked.
	norm := c.normalize(f)
	if errs := c.validator.Struct(norm, locale); errs.HasErrors() {
		c.logger.Debug("form rejected", zap.String("fields", errs.String()))
		return fail(OutcomeInvalidAction, errs.First().Message)
	}

	set := records.Build(records.Params{
		Identifiers: res.Identifiers.Valid,
		Emails:      res.Emails.Valid,
		Action:      norm.Action,
		VendorName:  norm.VendorName,
		Country:     norm.Country,
		VendorID:    c.vendorID,
	})
	next.Records = set
	res.Records = set
	res.Outcome = OutcomeOK
	res.Notices = append(res.Notices, c.notifier.Success(c.t(locale, MsgGenerated, set.Len())))

	c.logger.Info("records generated",
		zap.Int("identifiers", len(res.Identifiers.Valid)),
		zap.Int("emails", len(res.Emails.Valid)),
		zap.Int("records", set.Len()))
	return next, res
}

// normalize trims the scalar fields and fills blanks with the configured
// defaults. A blank action becomes the first configured one.
func (c *Controller) normalize(f Form) Form {
	f.Action = strings.TrimSpace(f.Action)
	if f.Action == "" {
		f.Action = c.actions[0]
	}
	f.VendorName = strings.TrimSpace(f.VendorName)
	if f.VendorName == "" {
		f.VendorName = c.vendorName
	}
	f.Country = strings.TrimSpace(f.Country)
	if f.Country == "" {
		f.Country = c.country
	}
	return f
}

// FormatIdentifiers punctuates every 14-digit line of text and keeps it as
// the form's identifier text.
func (c *Controller) FormatIdentifiers(text string) string {
	out := cnpj.FormatLines(text)
	c.mu.Lock()
	c.state.Form.Identifiers = out
	c.mu.Unlock()
	return out
}

func (c *Controller) t(locale, key string, args ...any) string {
	return c.messages.T(locale, key, args...)
}
