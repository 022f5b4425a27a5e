package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-payroll/internal/events"
	"go-payroll/internal/payroll"
)

// ConsumeSalaryPeriodCreated generates a payslip PDF for every salary period
// announced on the topic. Decode failures are committed and skipped;
// generation failures are retried on the next delivery.
func ConsumeSalaryPeriodCreated(
	ctx context.Context,
	reader *kafkago.Reader,
	payrollService payroll.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payslip")
	log.Info("payslip consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payslip consumer stopped")
				return
			}
			log.Error("fetch salary period message failed", zap.Error(err))
			continue
		}

		var event events.SalaryPeriodCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode salary_period.created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := payrollService.GeneratePayslip(ctx, event.SalaryPeriodID); err != nil {
			log.Error("generate payslip failed",
				zap.String("salary_period_id", event.SalaryPeriodID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit salary period message failed", zap.Error(err))
			continue
		}

		log.Info("payslip generated from salary_period.created event",
			zap.String("salary_period_id", event.SalaryPeriodID),
			zap.String("employee_id", event.EmployeeID),
		)
	}
}
