package service

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/amterp/foxhole/internal/cards"
	"github.com/amterp/foxhole/internal/model"
	"github.com/amterp/foxhole/internal/store"
	"go.uber.org/zap"
)

// Severity indicates how serious an issue is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue codes for programmatic handling.
const (
	CodeMalformedCollection   = "MALFORMED_COLLECTION"
	CodeIncompleteLink        = "INCOMPLETE_LINK"
	CodeEmptyCardName         = "EMPTY_CARD_NAME"
	CodeInvalidTheme          = "INVALID_THEME"
	CodeBlankUserName         = "BLANK_USER_NAME"
	CodeMalformedGlobalConfig = "MALFORMED_GLOBAL_CONFIG"
)

// UntitledCardName replaces empty card names on fix.
const UntitledCardName = "Untitled"

// Issue represents a single consistency problem in the persisted data.
type Issue struct {
	Severity  Severity `json:"severity"`
	Code      string   `json:"code"`
	Key       string   `json:"key,omitempty"`
	Card      int      `json:"card,omitempty"` // 1-based; 0 when not card-specific
	Link      int      `json:"link,omitempty"` // 1-based; 0 when not link-specific
	Message   string   `json:"message"`
	Fixable   bool     `json:"fixable"`
	FixAction string   `json:"fix_action,omitempty"`
	FixError  string   `json:"fix_error,omitempty"`

	fix func(st *fixState) error
}

// DiagnosticReport contains all issues found during diagnosis.
type DiagnosticReport struct {
	Backend string        `json:"backend"`
	Cards   int           `json:"cards"`
	Links   int           `json:"links"`
	Issues  []Issue       `json:"issues"`
	Summary ReportSummary `json:"summary"`
}

// ReportSummary provides counts for quick assessment.
type ReportSummary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Fixable  int `json:"fixable"`
}

// HasErrors returns true if there are any error-severity issues.
func (r *DiagnosticReport) HasErrors() bool {
	return r.Summary.Errors > 0
}

// DoctorService checks the persisted collection and preferences for
// problems that the normal write paths would never produce, typically
// from hand-edited files or another client writing to the same backend.
type DoctorService struct {
	adapter     store.Adapter
	globalStore store.GlobalStore
	cards       *cards.Store
	prefs       *PrefsService
	backend     string
	logger      *zap.Logger
}

// NewDoctorService creates a new doctor service.
func NewDoctorService(backend *store.Backend, globalStore store.GlobalStore, logger *zap.Logger) *DoctorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DoctorService{
		adapter:     backend.Adapter,
		globalStore: globalStore,
		cards:       cards.NewStore(backend.Adapter, cards.WithLogger(logger)),
		prefs:       NewPrefsService(backend.Adapter, logger),
		backend:     backend.Name,
		logger:      logger,
	}
}

// fixState threads the collection through fixes so each one sees the
// result of the previous.
type fixState struct {
	ctx        context.Context
	collection model.Collection
}

// Diagnose runs all checks and returns a report without modifying anything.
func (s *DoctorService) Diagnose(ctx context.Context) *DiagnosticReport {
	report := &DiagnosticReport{Backend: s.backend, Issues: []Issue{}}

	s.checkGlobalConfig(report)
	s.checkCollection(ctx, report)
	s.checkTheme(ctx, report)
	s.checkUserName(ctx, report)

	s.summarize(report)
	return report
}

// Fix runs Diagnose, then repairs every fixable issue unless dryRun is set.
// Fixes go through the same writers as normal edits.
func (s *DoctorService) Fix(ctx context.Context, dryRun bool) *DiagnosticReport {
	report := s.Diagnose(ctx)
	if dryRun {
		return report
	}

	state := &fixState{ctx: ctx, collection: s.cards.Initialize(ctx)}
	for _, i := range fixOrder(report.Issues) {
		issue := &report.Issues[i]
		if err := issue.fix(state); err != nil {
			issue.FixError = err.Error()
			s.logger.Warn("fix failed", zap.String("code", issue.Code), zap.Error(err))
		}
	}
	return report
}

// fixOrder returns the indices of fixable issues. Link removals run last
// card and last link first so earlier positions stay valid.
func fixOrder(issues []Issue) []int {
	var order []int
	for i, issue := range issues {
		if issue.Fixable && issue.fix != nil {
			order = append(order, i)
		}
	}
	slices.SortStableFunc(order, func(a, b int) int {
		ia, ib := issues[a], issues[b]
		if ia.Card != ib.Card {
			return ib.Card - ia.Card
		}
		return ib.Link - ia.Link
	})
	return order
}

func (s *DoctorService) summarize(report *DiagnosticReport) {
	for _, issue := range report.Issues {
		if issue.Severity == SeverityError {
			report.Summary.Errors++
		} else {
			report.Summary.Warnings++
		}
		if issue.Fixable {
			report.Summary.Fixable++
		}
	}
}

func (s *DoctorService) checkGlobalConfig(report *DiagnosticReport) {
	if s.globalStore == nil {
		return
	}
	if _, err := s.globalStore.Load(); err != nil {
		report.Issues = append(report.Issues, Issue{
			Severity:  SeverityWarning,
			Code:      CodeMalformedGlobalConfig,
			Message:   fmt.Sprintf("Cannot load global config: %v", err),
			FixAction: "Edit the config file by hand; defaults are used until then",
		})
	}
}

func (s *DoctorService) checkCollection(ctx context.Context, report *DiagnosticReport) {
	raw, ok := s.adapter.Read(ctx, store.KeyCards)
	if !ok {
		return
	}

	c, err := store.DecodeCollection(raw)
	if err != nil {
		report.Issues = append(report.Issues, Issue{
			Severity:  SeverityError,
			Code:      CodeMalformedCollection,
			Key:       store.KeyCards,
			Message:   err.Error(),
			FixAction: "The collection loads as empty; the next edit overwrites it",
		})
		return
	}

	report.Cards = len(c.Cards)
	for ci, card := range c.Cards {
		report.Links += len(card.Links)

		if strings.TrimSpace(card.Name) == "" {
			cardIdx := ci
			report.Issues = append(report.Issues, Issue{
				Severity:  SeverityWarning,
				Code:      CodeEmptyCardName,
				Key:       store.KeyCards,
				Card:      ci + 1,
				Message:   "Card has no name",
				Fixable:   true,
				FixAction: fmt.Sprintf("Rename to %q", UntitledCardName),
				fix: func(st *fixState) error {
					return s.apply(st, cards.RenameCard{Card: cardIdx, Name: UntitledCardName})
				},
			})
		}

		for li, link := range card.Links {
			if link.IsComplete() {
				continue
			}
			cardIdx, linkIdx := ci, li
			report.Issues = append(report.Issues, Issue{
				Severity:  SeverityWarning,
				Code:      CodeIncompleteLink,
				Key:       store.KeyCards,
				Card:      ci + 1,
				Link:      li + 1,
				Message:   incompleteLinkMessage(link),
				Fixable:   true,
				FixAction: "Remove the link",
				fix: func(st *fixState) error {
					return s.apply(st, cards.RemoveLink{Card: cardIdx, Link: linkIdx})
				},
			})
		}
	}
}

func (s *DoctorService) apply(st *fixState, a cards.Action) error {
	next, err := s.cards.Commit(st.ctx, st.collection, a)
	if err != nil {
		return err
	}
	st.collection = next
	return nil
}

func incompleteLinkMessage(l model.Link) string {
	switch {
	case l.Label == "" && l.URL == "":
		return "Link has neither label nor URL"
	case l.Label == "":
		return "Link has no label: " + l.URL
	default:
		return "Link has no URL: " + strconv.Quote(l.Label)
	}
}

func (s *DoctorService) checkTheme(ctx context.Context, report *DiagnosticReport) {
	raw, ok := s.adapter.Read(ctx, store.KeyTheme)
	if !ok {
		return
	}
	if _, err := model.ParseTheme(strings.TrimSpace(raw)); err == nil {
		return
	}
	report.Issues = append(report.Issues, Issue{
		Severity:  SeverityWarning,
		Code:      CodeInvalidTheme,
		Key:       store.KeyTheme,
		Message:   fmt.Sprintf("Unknown theme %q", raw),
		Fixable:   true,
		FixAction: fmt.Sprintf("Reset to %s", model.DefaultTheme),
		fix: func(st *fixState) error {
			return s.prefs.StoreTheme(st.ctx, model.DefaultTheme)
		},
	})
}

func (s *DoctorService) checkUserName(ctx context.Context, report *DiagnosticReport) {
	raw, ok := s.adapter.Read(ctx, store.KeyUserName)
	if !ok || strings.TrimSpace(raw) != "" {
		return
	}
	report.Issues = append(report.Issues, Issue{
		Severity:  SeverityWarning,
		Code:      CodeBlankUserName,
		Key:       store.KeyUserName,
		Message:   fmt.Sprintf("Stored name is blank; showing %q", model.DefaultUserName),
		FixAction: "Run 'foxhole name <name>'",
	})
}
