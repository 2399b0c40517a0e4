package mapping

import (
	"github.com/corelend/command_audit_app/internal/core/domain"
	"github.com/corelend/command_audit_app/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields.
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields.
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelLoan converts a domain Loan to a model Loan.
func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:          d.LoanID,
		AccountNo:       d.AccountNo,
		ClientName:      d.ClientName,
		OfficeName:      d.OfficeName,
		PrincipalAmount: d.PrincipalAmount,
		CurrencyCode:    d.CurrencyCode,
		Status:          string(d.Status),
		DisbursedOn:     d.DisbursedOn,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoan converts a model Loan to a domain Loan.
func ToDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:          m.LoanID,
		AccountNo:       m.AccountNo,
		ClientName:      m.ClientName,
		OfficeName:      m.OfficeName,
		PrincipalAmount: m.PrincipalAmount,
		CurrencyCode:    m.CurrencyCode,
		Status:          domain.LoanStatus(m.Status),
		DisbursedOn:     m.DisbursedOn,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLoanTransaction converts a domain LoanTransaction to a model LoanTransaction.
func ToModelLoanTransaction(d domain.LoanTransaction) models.LoanTransaction {
	return models.LoanTransaction{
		TransactionID:   d.TransactionID,
		LoanID:          d.LoanID,
		TransactionType: string(d.TransactionType),
		Amount:          d.Amount,
		TransactionDate: d.TransactionDate,
		Reversed:        d.Reversed,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoanTransaction converts a model LoanTransaction to a domain LoanTransaction.
func ToDomainLoanTransaction(m models.LoanTransaction) domain.LoanTransaction {
	return domain.LoanTransaction{
		TransactionID:   m.TransactionID,
		LoanID:          m.LoanID,
		TransactionType: domain.LoanTransactionType(m.TransactionType),
		Amount:          m.Amount,
		TransactionDate: m.TransactionDate,
		Reversed:        m.Reversed,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
