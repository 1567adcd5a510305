package banking

import (
	"time"

	"FinBridge/internal/domain/models"

	"github.com/shopspring/decimal"
)

// Demo fixtures served when a bank has no credentials. Balances are fixed so
// an all-demo total is AED 790,000.

type fixture struct {
	accounts      []models.Account
	transactions  []models.Transaction
	beneficiaries []models.Beneficiary
}

func aed(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func day(d, h, m int) time.Time { return time.Date(2024, time.January, d, h, m, 0, 0, time.UTC) }

func verified(v bool) *bool { return &v }

func fixtures(id models.ProviderID) fixture {
	switch id {
	case models.ProviderRakbank:
		return rakbankFixture()
	case models.ProviderMashreq:
		return mashreqFixture()
	case models.ProviderWio:
		return wioFixture()
	case models.ProviderEmiratesNBD:
		return enbdFixture()
	}
	return fixture{}
}

func account(p models.ProviderID, id, number, iban, typ string, bal int64) models.Account {
	return models.Account{
		ID:               id,
		Provider:         p,
		AccountNumber:    number,
		IBAN:             iban,
		AccountType:      typ,
		Currency:         "AED",
		Balance:          aed(bal),
		AvailableBalance: aed(bal),
		Status:           "ACTIVE",
	}
}

func tx(p models.ProviderID, id, acct, typ string, amt int64, desc, merchant, cat string, at time.Time, ref string) models.Transaction {
	return models.Transaction{
		ID:           id,
		Provider:     p,
		AccountID:    acct,
		Type:         typ,
		Amount:       aed(amt),
		Currency:     "AED",
		Description:  desc,
		MerchantName: merchant,
		Category:     cat,
		Date:         at,
		Reference:    ref,
		Status:       "COMPLETED",
	}
}

func rakbankFixture() fixture {
	p := models.ProviderRakbank
	return fixture{
		accounts: []models.Account{
			account(p, "RAK-CA-001", "0191234567001", "AE070400000191234567001", "CURRENT", 25000),
			account(p, "RAK-SA-002", "0191234567002", "AE070400000191234567002", "SAVINGS", 150000),
		},
		transactions: []models.Transaction{
			tx(p, "RAK-TX-1001", "RAK-CA-001", models.TxDebit, 450, "Grocery purchase", "Carrefour", "groceries", day(15, 18, 20), "POS-88213"),
			tx(p, "RAK-TX-1002", "RAK-CA-001", models.TxCredit, 18500, "Salary January", "", "salary", day(1, 9, 0), "SAL-202401"),
			tx(p, "RAK-TX-1003", "RAK-SA-002", models.TxCredit, 312, "Profit credit", "", "interest", day(10, 0, 5), "PRF-0110"),
		},
		beneficiaries: []models.Beneficiary{
			{ID: "RAK-BEN-01", Provider: p, Name: "Ahmed Al Mansoori", BankName: "Emirates NBD", AccountNumber: "1012345678901", IBAN: "AE260260001012345678901", Country: "AE", Currency: "AED", IsVerified: verified(true)},
			{ID: "RAK-BEN-02", Provider: p, Name: "Dubai Electricity & Water", BankName: "First Abu Dhabi Bank", AccountNumber: "3109876543210", IBAN: "AE350350003109876543210", Country: "AE", Currency: "AED", IsVerified: verified(true)},
		},
	}
}

func mashreqFixture() fixture {
	p := models.ProviderMashreq
	return fixture{
		accounts: []models.Account{
			account(p, "MSQ-CA-1001", "019100254321", "AE510330000019100254321", "CURRENT", 75000),
			account(p, "MSQ-SA-1002", "019100254322", "AE510330000019100254322", "SAVINGS", 250000),
		},
		transactions: []models.Transaction{
			tx(p, "MSQ-TX-5001", "MSQ-CA-1001", models.TxDebit, 1200, "Office supplies", "Virgin Megastore", "business", day(14, 11, 45), "MSQ-REF-5001"),
			tx(p, "MSQ-TX-5002", "MSQ-CA-1001", models.TxDebit, 8500, "Rent payment", "Emaar Properties", "housing", day(3, 8, 30), "MSQ-REF-5002"),
			tx(p, "MSQ-TX-5003", "MSQ-SA-1002", models.TxCredit, 25000, "Transfer from current", "", "transfer", day(5, 16, 10), "MSQ-REF-5003"),
		},
		beneficiaries: []models.Beneficiary{
			{ID: "MSQ-BEN-11", Provider: p, Name: "Fatima Hassan", BankName: "Abu Dhabi Commercial Bank", AccountNumber: "12004567890", IBAN: "AE140030012004567890123", Country: "AE", Currency: "AED", IsVerified: verified(true)},
			{ID: "MSQ-BEN-12", Provider: p, Name: "Gulf Trading LLC", BankName: "Dubai Islamic Bank", AccountNumber: "00123456789", IBAN: "AE620240000123456789012", Country: "AE", Currency: "AED", IsVerified: verified(false)},
		},
	}
}

func wioFixture() fixture {
	p := models.ProviderWio
	return fixture{
		accounts: []models.Account{
			account(p, "wio-acc-7f3a", "9700112233", "AE380860000009700112233", "BUSINESS", 125000),
		},
		transactions: []models.Transaction{
			tx(p, "wio-tx-0a1", "wio-acc-7f3a", models.TxCredit, 42000, "Invoice INV-2024-007 paid", "Acme FZ-LLC", "revenue", day(16, 10, 0), "INV-2024-007"),
			tx(p, "wio-tx-0a2", "wio-acc-7f3a", models.TxDebit, 299, "Cloud hosting", "AWS EMEA", "software", day(12, 2, 15), "CARD-4471"),
		},
	}
}

func enbdFixture() fixture {
	p := models.ProviderEmiratesNBD
	return fixture{
		accounts: []models.Account{
			account(p, "ENBD-CA-3001", "1015556667771", "AE460260001015556667771", "CURRENT", 45000),
			account(p, "ENBD-SA-3002", "1015556667772", "AE460260001015556667772", "SAVINGS", 120000),
		},
		transactions: []models.Transaction{
			tx(p, "ENBD-TX-9001", "ENBD-CA-3001", models.TxDebit, 650, "Fuel", "ENOC", "transport", day(13, 7, 40), "ENBD-REF-9001"),
			tx(p, "ENBD-TX-9002", "ENBD-CA-3001", models.TxDebit, 2300, "AANI transfer to Ahmed", "", "transfer", day(8, 19, 5), "AANI-77120"),
			tx(p, "ENBD-TX-9003", "ENBD-SA-3002", models.TxCredit, 5000, "Standing order", "", "savings", day(2, 6, 0), "SO-0102"),
		},
		beneficiaries: []models.Beneficiary{
			{ID: "ENBD-BEN-21", Provider: p, Name: "Mohammed Rashid", BankName: "Mashreq Bank", AccountNumber: "019100998877", IBAN: "AE510330000019100998877", Country: "AE", Currency: "AED", IsVerified: verified(true)},
			{ID: "ENBD-BEN-22", Provider: p, Name: "Priya Nair", BankName: "HDFC Bank", AccountNumber: "50100234567891", Country: "IN", Currency: "INR", IsVerified: verified(true)},
		},
	}
}
