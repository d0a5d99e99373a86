package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"propertydesk/events"
	"propertydesk/wizard"
)

// HandleLeaseWizardSubmit validates every step, creates the lease with its
// charges and announces it on the event bus. An incomplete wizard is sent
// back to its first invalid step. A complete session is claimed before the
// save, so repeated submits of one session create a single lease.
func HandleLeaseWizardSubmit(app *pocketbase.PocketBase, deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sid := e.Request.PathValue("sid")

		var snap leaseSnapshot
		w, err := deps.Leases.Take(sid, func(w *wizard.LeaseWizard) error {
			if err := w.ValidateAll(); err != nil {
				st, _, _ := w.FirstInvalid()
				w.JumpToStep(st.ID)
				snap = snapshotLease(w)
				return err
			}
			snap = snapshotLease(w)
			return nil
		})
		switch {
		case errors.Is(err, wizard.ErrSessionNotFound):
			return sessionExpired(e, "/leases/new")
		case errors.Is(err, wizard.ErrIncomplete):
			SetToast(e, ToastError, "Please complete the "+snap.current.Label+" step before saving.")
			return renderLeaseWizard(e, app, deps, snap)
		case err != nil:
			log.Printf("lease_submit: session %s: %v", sid, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		leaseID, err := saveLease(app, snap.state)
		if err != nil {
			deps.Leases.Restore(sid, w)
			log.Printf("lease_submit: could not save lease: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not save the lease. Please try again.")
		}

		payload := leaseSubmission(snap)
		if err := deps.Publisher.Publish(e.Request.Context(), events.SubjectLeaseSubmitted, leaseID, payload); err != nil {
			log.Printf("lease_submit: could not publish lease %s: %v", leaseID, err)
		}

		SetToast(e, ToastSuccess, "Lease created")
		return Redirect(e, "/leases/"+leaseID)
	}
}

// saveLease writes the lease, its charges and the unit occupancy in one
// transaction.
func saveLease(app *pocketbase.PocketBase, s wizard.LeaseState) (string, error) {
	var leaseID string
	err := app.RunInTransaction(func(txApp core.App) error {
		leasesCol, err := txApp.FindCollectionByNameOrId("leases")
		if err != nil {
			return fmt.Errorf("find leases collection: %w", err)
		}
		chargesCol, err := txApp.FindCollectionByNameOrId("lease_charges")
		if err != nil {
			return fmt.Errorf("find lease_charges collection: %w", err)
		}

		lease := core.NewRecord(leasesCol)
		lease.Set("property", s.PropertyID)
		lease.Set("unit", s.UnitID)
		lease.Set("tenants", s.TenantIDs)
		lease.Set("lease_type", s.LeaseType)
		lease.Set("start_date", s.StartDate)
		lease.Set("end_date", s.EndDate)
		lease.Set("rent_amount", s.RentAmount)
		lease.Set("payment_frequency", string(s.PaymentFrequency))
		lease.Set("deposit", s.Deposit)
		lease.Set("late_fee_enabled", s.LateFees.Enabled)
		if s.LateFees.Enabled {
			grace, _ := strconv.Atoi(s.LateFees.GraceDays)
			lease.Set("late_fee_grace_days", grace)
			lease.Set("late_fee_type", s.LateFees.FeeType)
			lease.Set("late_fee_amount", s.LateFees.Amount)
		}
		lease.Set("status", "active")
		if err := txApp.Save(lease); err != nil {
			return fmt.Errorf("save lease: %w", err)
		}

		for i, c := range s.Charges {
			charge := core.NewRecord(chargesCol)
			charge.Set("lease", lease.Id)
			charge.Set("sort_order", i+1)
			charge.Set("description", c.Description)
			charge.Set("amount", c.Amount)
			charge.Set("frequency", string(c.Frequency))
			if err := txApp.Save(charge); err != nil {
				return fmt.Errorf("save charge %d: %w", i+1, err)
			}
		}

		unit, err := txApp.FindRecordById("units", s.UnitID)
		if err != nil {
			return fmt.Errorf("find unit: %w", err)
		}
		unit.Set("status", "occupied")
		if err := txApp.Save(unit); err != nil {
			return fmt.Errorf("save unit: %w", err)
		}

		leaseID = lease.Id
		return nil
	})
	return leaseID, err
}

func leaseSubmission(snap leaseSnapshot) events.LeaseSubmission {
	s := snap.state
	sub := events.LeaseSubmission{
		PropertyID:       s.PropertyID,
		UnitID:           s.UnitID,
		LeaseType:        s.LeaseType,
		StartDate:        s.StartDate,
		EndDate:          s.EndDate,
		TenantIDs:        s.TenantIDs,
		RentAmount:       s.RentAmount,
		PaymentFrequency: string(s.PaymentFrequency),
		Deposit:          s.Deposit,
		LateFeeEnabled:   s.LateFees.Enabled,
		TotalMonthly:     snap.summary.TotalMonthly.StringFixed(2),
	}
	for _, c := range s.Charges {
		sub.Charges = append(sub.Charges, events.LeaseCharge{
			Description: c.Description,
			Amount:      c.Amount,
			Frequency:   string(c.Frequency),
		})
	}
	if s.LateFees.Enabled {
		sub.LateFeeGraceDays = s.LateFees.GraceDays
		sub.LateFeeType = s.LateFees.FeeType
		sub.LateFeeAmount = s.LateFees.Amount
	}
	return sub
}
