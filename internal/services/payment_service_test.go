package services

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"sports_complex_backend/internal/models"
	"sports_complex_backend/internal/repositories"
)

// listPaymentRepo serves a canned payment list and records created rows.
type listPaymentRepo struct {
	payments []models.Payment
	created  []*models.Payment
}

func (f *listPaymentRepo) CreatePayment(executor repositories.SQLExecutor, payment *models.Payment) (int64, error) {
	payment.ID = int64(len(f.created) + 1)
	f.created = append(f.created, payment)
	return payment.ID, nil
}

func (f *listPaymentRepo) GetPayments() ([]models.Payment, error) {
	return f.payments, nil
}

func (f *listPaymentRepo) DeletePayment(executor repositories.SQLExecutor, id int64) error {
	return repositories.ErrNotFound
}

func (f *listPaymentRepo) GetLatestPaymentWithPlan(clientID int64) (*models.LatestPayment, error) {
	return nil, repositories.ErrNotFound
}

type stubClientRepo struct {
	missing bool
}

func (f *stubClientRepo) CreateClient(repositories.SQLExecutor, *models.Client) (int64, error) {
	return 0, errors.New("not implemented")
}
func (f *stubClientRepo) GetClientByID(id int64) (*models.Client, error) {
	if f.missing {
		return nil, repositories.ErrNotFound
	}
	return &models.Client{ID: id, Name: "Anna Petrova"}, nil
}
func (f *stubClientRepo) GetClients(int, int, *string) ([]models.Client, int, error) {
	return nil, 0, nil
}
func (f *stubClientRepo) UpdateClient(repositories.SQLExecutor, *models.Client) error {
	return errors.New("not implemented")
}
func (f *stubClientRepo) DeleteClient(repositories.SQLExecutor, int64) error {
	return errors.New("not implemented")
}

type stubPlanRepo struct {
	missing bool
}

func (f *stubPlanRepo) CreatePlan(repositories.SQLExecutor, *models.MembershipPlan) (int64, error) {
	return 0, errors.New("not implemented")
}
func (f *stubPlanRepo) GetPlanByID(id int64) (*models.MembershipPlan, error) {
	if f.missing {
		return nil, repositories.ErrNotFound
	}
	return &models.MembershipPlan{ID: id, Name: "Monthly Gym", DurationMonths: 1, Price: 50}, nil
}
func (f *stubPlanRepo) GetPlans() ([]models.MembershipPlan, error) { return nil, nil }
func (f *stubPlanRepo) UpdatePlan(repositories.SQLExecutor, *models.MembershipPlan) error {
	return errors.New("not implemented")
}
func (f *stubPlanRepo) DeletePlan(repositories.SQLExecutor, int64) error {
	return errors.New("not implemented")
}

func TestCreatePayment_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     CreatePaymentRequest
		clients *stubClientRepo
		plans   *stubPlanRepo
		wantErr error
	}{
		{
			"non-positive amount",
			CreatePaymentRequest{ClientID: 1, MembershipID: 1, Amount: 0},
			&stubClientRepo{}, &stubPlanRepo{},
			ErrPaymentValidation,
		},
		{
			"unknown client",
			CreatePaymentRequest{ClientID: 99, MembershipID: 1, Amount: 50},
			&stubClientRepo{missing: true}, &stubPlanRepo{},
			ErrClientForPaymentAbsent,
		},
		{
			"unknown plan",
			CreatePaymentRequest{ClientID: 1, MembershipID: 99, Amount: 50},
			&stubClientRepo{}, &stubPlanRepo{missing: true},
			ErrPlanForPaymentAbsent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPaymentService(&listPaymentRepo{}, tt.clients, tt.plans, nil)
			_, err := svc.CreatePayment(tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreatePayment_AcceptsBareDate(t *testing.T) {
	repo := &listPaymentRepo{}
	svc := NewPaymentService(repo, &stubClientRepo{}, &stubPlanRepo{}, nil)

	backdated := "2024-01-01"
	payment, err := svc.CreatePayment(CreatePaymentRequest{
		ClientID:     1,
		MembershipID: 1,
		Amount:       50,
		PaymentDate:  &backdated,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !payment.PaymentDate.Equal(want) {
		t.Errorf("payment date = %s, want %s", payment.PaymentDate, want)
	}
}

func TestExportPaymentsCSV(t *testing.T) {
	clientName := "Anna Petrova"
	planName := "Monthly Gym"
	repo := &listPaymentRepo{payments: []models.Payment{
		{
			ID:           1,
			ClientID:     1,
			MembershipID: 1,
			Amount:       49.9,
			PaymentDate:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
			ClientName:   &clientName,
			PlanName:     &planName,
		},
		{
			// Client deleted since the payment was taken; the row still exports.
			ID:           2,
			ClientID:     2,
			MembershipID: 1,
			Amount:       50,
			PaymentDate:  time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
			PlanName:     &planName,
		},
	}}
	svc := NewPaymentService(repo, &stubClientRepo{}, &stubPlanRepo{}, nil)

	var buf bytes.Buffer
	if err := svc.ExportPaymentsCSV(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two rows, got %d lines: %q", len(lines), buf.String())
	}
	if lines[0] != "id,client,membership_plan,amount,payment_date" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "1,Anna Petrova,Monthly Gym,49.90,2024-01-01T12:00:00Z" {
		t.Errorf("row 1 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "2,,Monthly Gym,50.00,") {
		t.Errorf("row 2 = %q", lines[2])
	}
}
