package submit

import (
	"context"

	"github.com/JonMunkholm/basefigures/internal/core"
	"github.com/JonMunkholm/basefigures/internal/logging"
)

// Log writes each record to the request logger. It is the default sink when no
// list store is configured.
type Log struct{}

// NewLog returns a Log sink.
func NewLog() *Log {
	return &Log{}
}

// Submit logs rec and never fails.
func (Log) Submit(ctx context.Context, rec core.Record) error {
	logging.FromContext(ctx).Info("record submitted",
		"Title", rec.Title,
		"Base_Mobile_Postpaid", rec.BaseMobilePostpaid,
		"Base_Mobile_Prepaid", rec.BaseMobilePrepaid,
		"Base_Fixed", rec.BaseFixed,
		"Base_Consumer", rec.BaseConsumer,
		"Base_Enterprise", rec.BaseEnterprise,
	)
	return nil
}
