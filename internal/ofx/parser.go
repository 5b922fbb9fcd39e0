// Package ofx imports bank and credit card statements in OFX/QFX format.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/savings-sprint/internal/classification"
	"github.com/Veraticus/savings-sprint/internal/model"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tags at end of line with no closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Parser converts OFX statements into ledger transactions.
type Parser struct {
	detector *classification.Detector
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithDetector categorizes entries the OFX type says nothing about by
// matching their payee against the detector's rules.
func WithDetector(d *classification.Detector) ParserOption {
	return func(p *Parser) {
		p.detector = d
	}
}

// NewParser creates a new OFX parser.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Statement is the parsed content of one OFX file.
type Statement struct {
	Accounts     []string
	Transactions []model.Transaction
	Skipped      int
}

// preprocessOFX fixes common formatting issues in OFX files.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile parses an OFX/QFX document. Debits become expenses and credits
// become income; zero-amount entries are skipped.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) (*Statement, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	stmt := &Statement{}
	for _, msg := range resp.Bank {
		if bank, ok := msg.(*ofxgo.StatementResponse); ok {
			p.collect(stmt, string(bank.BankAcctFrom.AcctID), bank.BankTranList)
		}
	}
	for _, msg := range resp.CreditCard {
		if cc, ok := msg.(*ofxgo.CCStatementResponse); ok {
			p.collect(stmt, string(cc.CCAcctFrom.AcctID), cc.BankTranList)
		}
	}

	slog.Debug("Parsed OFX file",
		"transactions", len(stmt.Transactions),
		"accounts", len(stmt.Accounts),
		"skipped", stmt.Skipped)

	return stmt, nil
}

func (p *Parser) collect(stmt *Statement, accountID string, list *ofxgo.TransactionList) {
	if accountID != "" {
		stmt.Accounts = append(stmt.Accounts, accountID)
	}
	if list == nil {
		return
	}

	for _, ofxTx := range list.Transactions {
		txn, ok := p.convertTransaction(ofxTx)
		if !ok {
			stmt.Skipped++
			continue
		}
		if txn.Category == model.OtherCategory && p.detector != nil {
			if m, matched := p.detector.Categorize(txn); matched {
				txn.Category = m.Category
			}
		}
		stmt.Transactions = append(stmt.Transactions, txn)
	}
}

// convertTransaction maps one OFX entry onto the ledger model.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction) (model.Transaction, bool) {
	amount := decimal.NewFromBigRat(&ofxTx.TrnAmt.Rat, 2)
	if amount.IsZero() {
		return model.Transaction{}, false
	}

	typ := model.TypeIncome
	if amount.IsNegative() {
		typ = model.TypeExpense
	}
	value, err := model.AmountFromDecimal(amount.Abs())
	if err != nil {
		return model.Transaction{}, false
	}

	id := string(ofxTx.FiTID)
	if id == "" {
		id = model.NewTransactionID()
	}

	return model.Transaction{
		ID:       id,
		Type:     typ,
		Amount:   value,
		Category: inferCategory(ofxTx.TrnType, typ),
		Note:     extractPayee(ofxTx),
		Date:     model.FormatDate(ofxTx.DtPosted.Time),
	}, true
}

// inferCategory picks a category from the OFX transaction type. Anything
// unrecognized is filed under Other.
func inferCategory(trnType any, typ model.TransactionType) string {
	switch typ {
	case model.TypeIncome:
		switch trnType {
		case ofxgo.TrnTypeDirectDep:
			return "Salary"
		case ofxgo.TrnTypeInt, ofxgo.TrnTypeDiv:
			return "Investments"
		}
	case model.TypeExpense:
		switch trnType {
		case ofxgo.TrnTypeFee, ofxgo.TrnTypeSrvChg:
			return "Debt & Loans"
		case ofxgo.TrnTypeRepeatPmt:
			return "Utilities"
		}
	}
	return model.OtherCategory
}

// extractPayee returns a readable description for the transaction note.
func extractPayee(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && isGenericDescription(name) {
		name = strings.TrimSpace(string(tx.Memo))
	}

	upper := strings.ToUpper(name)
	for _, prefix := range []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"UPI/",
	} {
		if strings.HasPrefix(upper, prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// "MM/DD " date prefixes
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}
	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "", "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
