// Package pain008 renders a validated collection run as an ISO-20022
// pain.008 customer direct debit initiation message.
package pain008

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/solidaria/backoffice/internal/collection/domain"
)

const namespace = "urn:iso:std:iso:20022:tech:xsd:pain.008.001.02"

const (
	dateFormat     = "2006-01-02"
	dateTimeFormat = "2006-01-02T15:04:05"
)

// Serialize renders the run deterministically: the same run value always
// produces byte-identical output. Items keep their order inside each batch;
// batches follow the fixed FRST, RCUR, OOFF, FNAL ordering. Message-level
// and batch-level control sums are derived from the same item walk, so a
// mismatch with the run's stored totals means the builder and serializer
// have diverged and is treated as an internal defect.
func Serialize(run domain.CollectionRun) ([]byte, error) {
	if len(run.Items) == 0 {
		return nil, domain.ErrNoItems
	}

	var (
		batches  []paymentInfo
		msgCents int64
		msgCount int
	)
	for _, seq := range domain.SequenceOrder {
		var (
			txs        []transaction
			batchCents int64
		)
		for _, item := range run.Items {
			if item.SequenceType != seq {
				continue
			}
			txs = append(txs, transaction{
				PmtID:  paymentID{EndToEndID: endToEndID(item)},
				Amount: instructedAmount{Currency: "EUR", Value: domain.FormatCents(item.AmountCents)},
				DirectDebitTx: directDebitTx{
					MandateInfo: mandateInfo{
						MandateID:     item.UMR,
						SignatureDate: item.SignatureDate.Format(dateFormat),
					},
				},
				DebtorAgent:   agent{FinInstnID: finInstnID{Other: otherID{ID: "NOTPROVIDED"}}},
				Debtor:        party{Name: item.DonorName},
				DebtorAccount: account{ID: accountID{IBAN: item.IBAN}},
			})
			batchCents += item.AmountCents
		}
		if len(txs) == 0 {
			continue
		}

		batches = append(batches, paymentInfo{
			PmtInfID:     fmt.Sprintf("%s-%s", run.MessageID, seq),
			Method:       "DD",
			NbOfTxs:      len(txs),
			CtrlSum:      domain.FormatCents(batchCents),
			PmtTpInf:     paymentTypeInfo{ServiceLevel: codeValue{Code: "SEPA"}, LocalInstrument: codeValue{Code: run.Scheme}, SequenceType: string(seq)},
			ReqdColltnDt: run.RequestedCollectionDate.Format(dateFormat),
			Creditor:     party{Name: run.CreditorName},
			CreditorAcct: account{ID: accountID{IBAN: run.CreditorIBAN}},
			CreditorAgt:  agent{FinInstnID: finInstnID{Other: otherID{ID: "NOTPROVIDED"}}},
			CreditorSchemeID: creditorSchemeID{
				ID: schemeID{PrvtID: privateID{Other: schemeOther{
					ID:       run.CreditorID,
					SchemeNm: schemeName{Proprietary: "SEPA"},
				}}},
			},
			Transactions: txs,
		})
		msgCents += batchCents
		msgCount += len(txs)
	}

	if msgCount != run.TotalCount || msgCents != run.TotalAmountCents {
		panic(fmt.Sprintf(
			"pain008: control sum drift: serialized %d txs / %s, run declares %d / %s",
			msgCount, domain.FormatCents(msgCents),
			run.TotalCount, domain.FormatCents(run.TotalAmountCents),
		))
	}

	doc := document{
		Xmlns: namespace,
		Initiation: initiation{
			GroupHeader: groupHeader{
				MsgID:      run.MessageID,
				CreDtTm:    run.CreatedAt.UTC().Format(dateTimeFormat),
				NbOfTxs:    msgCount,
				CtrlSum:    domain.FormatCents(msgCents),
				InitgParty: party{Name: run.CreditorName},
			},
			PaymentInfos: batches,
		},
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// Filename derives the deterministic artifact name for an export.
func Filename(orgID string, collectionDate time.Time) string {
	return fmt.Sprintf("sepa-%s-%s.xml", orgID, collectionDate.Format("20060102"))
}

func endToEndID(item domain.CollectionItem) string {
	if item.EndToEndID != "" {
		return item.EndToEndID
	}
	return domain.EndToEndPlaceholder
}

type document struct {
	XMLName    xml.Name   `xml:"Document"`
	Xmlns      string     `xml:"xmlns,attr"`
	Initiation initiation `xml:"CstmrDrctDbtInitn"`
}

type initiation struct {
	GroupHeader  groupHeader   `xml:"GrpHdr"`
	PaymentInfos []paymentInfo `xml:"PmtInf"`
}

type groupHeader struct {
	MsgID      string `xml:"MsgId"`
	CreDtTm    string `xml:"CreDtTm"`
	NbOfTxs    int    `xml:"NbOfTxs"`
	CtrlSum    string `xml:"CtrlSum"`
	InitgParty party  `xml:"InitgPty"`
}

type paymentInfo struct {
	PmtInfID         string           `xml:"PmtInfId"`
	Method           string           `xml:"PmtMtd"`
	NbOfTxs          int              `xml:"NbOfTxs"`
	CtrlSum          string           `xml:"CtrlSum"`
	PmtTpInf         paymentTypeInfo  `xml:"PmtTpInf"`
	ReqdColltnDt     string           `xml:"ReqdColltnDt"`
	Creditor         party            `xml:"Cdtr"`
	CreditorAcct     account          `xml:"CdtrAcct"`
	CreditorAgt      agent            `xml:"CdtrAgt"`
	CreditorSchemeID creditorSchemeID `xml:"CdtrSchmeId"`
	Transactions     []transaction    `xml:"DrctDbtTxInf"`
}

type paymentTypeInfo struct {
	ServiceLevel    codeValue `xml:"SvcLvl"`
	LocalInstrument codeValue `xml:"LclInstrm"`
	SequenceType    string    `xml:"SeqTp"`
}

type codeValue struct {
	Code string `xml:"Cd"`
}

type transaction struct {
	PmtID         paymentID        `xml:"PmtId"`
	Amount        instructedAmount `xml:"InstdAmt"`
	DirectDebitTx directDebitTx    `xml:"DrctDbtTx"`
	DebtorAgent   agent            `xml:"DbtrAgt"`
	Debtor        party            `xml:"Dbtr"`
	DebtorAccount account          `xml:"DbtrAcct"`
}

type paymentID struct {
	EndToEndID string `xml:"EndToEndId"`
}

type instructedAmount struct {
	Currency string `xml:"Ccy,attr"`
	Value    string `xml:",chardata"`
}

type directDebitTx struct {
	MandateInfo mandateInfo `xml:"MndtRltdInf"`
}

type mandateInfo struct {
	MandateID     string `xml:"MndtId"`
	SignatureDate string `xml:"DtOfSgntr"`
}

type party struct {
	Name string `xml:"Nm"`
}

type account struct {
	ID accountID `xml:"Id"`
}

type accountID struct {
	IBAN string `xml:"IBAN"`
}

type agent struct {
	FinInstnID finInstnID `xml:"FinInstnId"`
}

type finInstnID struct {
	Other otherID `xml:"Othr"`
}

type otherID struct {
	ID string `xml:"Id"`
}

type creditorSchemeID struct {
	ID schemeID `xml:"Id"`
}

type schemeID struct {
	PrvtID privateID `xml:"PrvtId"`
}

type privateID struct {
	Other schemeOther `xml:"Othr"`
}

type schemeOther struct {
	ID       string     `xml:"Id"`
	SchemeNm schemeName `xml:"SchmeNm"`
}

type schemeName struct {
	Proprietary string `xml:"Prtry"`
}
