/*
Package escrow builds the admin dashboard views over the merchant fee escrow
ledger.

Every request re-reads the ledger and folds it into per-merchant aggregates:
- current escrow (pending and missed fees)
- missed payouts (amount, count, earliest due date)
- total revenue (paid fees)

Payouts run every Tuesday and Friday at 10:00 in the dashboard time zone.

Usage:

	svc := escrow.NewService(repo, escrow.Config{Location: loc}, metrics, logger)

	// List view
	rows, err := svc.ListRows(ctx)

	// Detail view
	detail, err := svc.GetMerchantDetail(ctx, merchantID)

Error Handling:

- ErrMerchantIDRequired: the merchant id is blank
- ErrMerchantNotFound: no business user matches the id
- any other error is an upstream fetch failure
*/
package escrow
