package jobs

import (
	"context"
	"time"

	"rental-booking-backend/internal/logger"
)

// SendReturnReminders emails customers whose bookings are still out for
// rental past their return date.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()

		overdue, err := jr.store.Bookings.ListOverdueReturns(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to list overdue returns", "error", err)
			return
		}

		sent := 0
		for i := range overdue {
			b := &overdue[i]
			customer, err := jr.store.Customers.GetByID(ctx, b.CustomerID)
			if err != nil {
				logger.Error("Failed to load customer for reminder",
					"booking", b.BookingNumber, "customer_id", b.CustomerID, "error", err)
				continue
			}
			if customer.Email == "" {
				logger.Debug("Customer has no email, skipping reminder",
					"booking", b.BookingNumber, "customer_id", customer.ID)
				continue
			}
			if err := jr.services.Email.SendReturnReminder(ctx, customer.Email, customer.Name, b); err != nil {
				logger.Error("Failed to send return reminder",
					"booking", b.BookingNumber, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Return reminders processed", "overdue", len(overdue), "sent", sent)
	})
}

// RefreshCustomerStats recomputes booking aggregates for every customer.
func (jr *JobRunner) RefreshCustomerStats() {
	jr.runWithRecovery("RefreshCustomerStats", func() {
		ctx := context.Background()

		ids, err := jr.store.Customers.ListIDs(ctx)
		if err != nil {
			logger.Error("Failed to list customers", "error", err)
			return
		}

		refreshed := 0
		for _, id := range ids {
			if err := jr.services.Customer.RefreshStats(ctx, id); err != nil {
				logger.Error("Failed to refresh customer stats", "customer_id", id, "error", err)
				continue
			}
			refreshed++
		}

		logger.Info("Customer stats refreshed", "customers", refreshed)
	})
}
