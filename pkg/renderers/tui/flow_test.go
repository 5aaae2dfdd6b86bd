package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pestel/pkg/analysis"
	"github.com/goliatone/go-pestel/pkg/form"
	"github.com/goliatone/go-pestel/pkg/model"
	"github.com/goliatone/go-pestel/pkg/schema"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	infoMessages []string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int

	inputConfigs []InputConfig
	multiConfigs []SelectConfig
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.multiConfigs = append(s.multiConfigs, cfg)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

type stubBackend struct {
	sent analysis.FormInput
}

func (b *stubBackend) Analyze(_ context.Context, input analysis.FormInput) error {
	b.sent = input
	return nil
}

func (b *stubBackend) Summary(_ context.Context, _ string) (analysis.SummaryPayload, error) {
	return analysis.SummaryPayload{Summary: "Summary\nok"}, nil
}

func analysisForm(t *testing.T) model.FormModel {
	t.Helper()
	s, err := schema.Load(context.Background())
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	f, err := s.FormModel(schema.OperationAnalyze)
	if err != nil {
		t.Fatalf("form model: %v", err)
	}
	return f
}

func TestFlow_CollectWritesAnswers(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Acme", "Retail", "India", "SMB", "Rival A, Rival B"},
		selectIdx: []int{1},
		multiIdx:  [][]int{{0, 2}},
	}
	ctrl := form.NewController(&stubBackend{})

	if err := New(WithPromptDriver(driver)).Collect(context.Background(), analysisForm(t), ctrl); err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := analysis.FormInput{
		BusinessName:      "Acme",
		Industry:          "Retail",
		GeographicalFocus: "India",
		TimeFrame:         analysis.TimeFrameLong,
		TargetMarket:      "SMB",
		Competitors:       "Rival A, Rival B",
		PoliticalFactors: map[string]bool{
			analysis.FactorGovernmentPolicies: true,
			analysis.FactorTaxRegulations:     true,
		},
	}
	if diff := cmp.Diff(want, ctrl.Draft()); diff != "" {
		t.Fatalf("draft mismatch (-want +got):\n%s", diff)
	}
	if driver.inputConfigs[0].Message != "Business Name *" {
		t.Fatalf("prompt message = %q", driver.inputConfigs[0].Message)
	}
	if driver.inputConfigs[4].Message != "Competitors (comma-separated)" {
		t.Fatalf("optional prompt message = %q", driver.inputConfigs[4].Message)
	}
}

func TestFlow_RequiredFieldIsAskedAgain(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"  ", "Acme", "Retail", "India", "SMB", ""},
		selectIdx: []int{0},
		multiIdx:  [][]int{nil},
	}
	ctrl := form.NewController(&stubBackend{})

	if err := New(WithPromptDriver(driver)).Collect(context.Background(), analysisForm(t), ctrl); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if diff := cmp.Diff([]string{"✗ Business Name is required"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if ctrl.Draft().BusinessName != "Acme" {
		t.Fatalf("business name = %q", ctrl.Draft().BusinessName)
	}
}

func TestFlow_FactorDefaultsFromDraft(t *testing.T) {
	initial := analysis.NewFormInput()
	_ = initial.SetFactor(analysis.FactorPoliticalStability, true)
	driver := &stubDriver{
		inputs:    []string{"Acme", "Retail", "India", "SMB", ""},
		selectIdx: []int{0},
		multiIdx:  [][]int{{4}},
	}
	ctrl := form.NewController(&stubBackend{}, form.WithInitialInput(initial))

	if err := New(WithPromptDriver(driver)).Collect(context.Background(), analysisForm(t), ctrl); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if diff := cmp.Diff([]int{1}, driver.multiConfigs[0].Defaults); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{analysis.FactorGlobalTradeAgreements}, ctrl.Draft().EnabledFactors()); diff != "" {
		t.Fatalf("factors mismatch (-want +got):\n%s", diff)
	}
}

func TestFlow_RunSubmitsAfterConfirm(t *testing.T) {
	backend := &stubBackend{}
	driver := &stubDriver{
		inputs:    []string{"Acme", "Retail", "India", "SMB", ""},
		selectIdx: []int{0},
		multiIdx:  [][]int{{3}},
		confirm:   []bool{true},
	}
	ctrl := form.NewController(backend)

	result, err := New(WithPromptDriver(driver), WithConfirm(true)).Run(context.Background(), analysisForm(t), ctrl)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Summary != "Summary\nok" {
		t.Fatalf("summary = %q", result.Summary)
	}
	if backend.sent.BusinessName != "Acme" || !backend.sent.Factor(analysis.FactorIndustryRegulations) {
		t.Fatalf("unexpected submission %+v", backend.sent)
	}
}

func TestFlow_RunDeclined(t *testing.T) {
	backend := &stubBackend{}
	driver := &stubDriver{
		inputs:    []string{"Acme", "Retail", "India", "SMB", ""},
		selectIdx: []int{0},
		multiIdx:  [][]int{nil},
		confirm:   []bool{false},
	}

	_, err := New(WithPromptDriver(driver), WithConfirm(true)).Run(context.Background(), analysisForm(t), form.NewController(backend))
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
	if backend.sent.BusinessName != "" {
		t.Fatalf("declined run should not submit")
	}
}

func TestFlow_PropagatesAbort(t *testing.T) {
	driver := &stubDriver{}
	err := New(WithPromptDriver(driver)).Collect(context.Background(), analysisForm(t), form.NewController(&stubBackend{}))
	if err == nil {
		t.Fatalf("expected driver error to propagate")
	}
}
