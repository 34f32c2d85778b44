package database

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/datastore"

	"github.com/locvowork/payroll_report_sample/internal/domain"
)

// PayrollSummaryEntity is the Datastore shape of an archived department total.
type PayrollSummaryEntity struct {
	DepartmentID int       `datastore:"DepartmentID"`
	Total        int64     `datastore:"Total"`
	ArchivedAt   time.Time `datastore:"ArchivedAt"`
}

// PayrollArchive wraps the cloud datastore client. A nil archive is a
// valid no-op collaborator, matching how the rest of the app treats the
// archive as optional.
type PayrollArchive struct {
	client *datastore.Client
}

// WrapPayrollArchive wraps an existing datastore client.
func WrapPayrollArchive(client *datastore.Client) *PayrollArchive {
	if client == nil {
		return nil
	}
	return &PayrollArchive{client: client}
}

// SaveSummary archives one department summary, keyed by department and
// archive time so reruns never overwrite history.
func (pa *PayrollArchive) SaveSummary(ctx context.Context, summary domain.SummaryTrace) error {
	if pa == nil || pa.client == nil {
		return fmt.Errorf("datastore client is nil")
	}

	now := time.Now().UTC()
	key := datastore.NameKey("PayrollSummary",
		fmt.Sprintf("%d-%d", summary.DepartmentID, now.UnixNano()),
		nil)

	entity := PayrollSummaryEntity{
		DepartmentID: summary.DepartmentID,
		Total:        summary.Total,
		ArchivedAt:   now,
	}

	_, err := pa.client.Put(ctx, key, &entity)
	return err
}

// ListSummaries retrieves archived summaries for a department, most
// recent first.
func (pa *PayrollArchive) ListSummaries(ctx context.Context, departmentID int) ([]domain.ArchivedSummary, error) {
	if pa == nil || pa.client == nil {
		return nil, fmt.Errorf("datastore client is nil")
	}

	var entities []PayrollSummaryEntity
	q := datastore.NewQuery("PayrollSummary").
		Filter("DepartmentID =", departmentID).
		Order("-ArchivedAt")

	if _, err := pa.client.GetAll(ctx, q, &entities); err != nil {
		return nil, err
	}

	summaries := make([]domain.ArchivedSummary, len(entities))
	for i, e := range entities {
		summaries[i] = domain.ArchivedSummary{
			DepartmentID: e.DepartmentID,
			Total:        e.Total,
			ArchivedAt:   e.ArchivedAt,
		}
	}
	return summaries, nil
}
