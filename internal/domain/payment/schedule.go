package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Schedule gera as parcelas de um valor financiado. O valor de cada parcela
// é truncado para baixo em centavos e a última absorve a diferença, de forma
// que a soma é sempre igual ao valor financiado arredondado em 2 casas.
// As datas de vencimento são mensais a partir de start.
func Schedule(financed decimal.Decimal, count int, start time.Time) []Installment {
	if count <= 0 {
		count = 1
	}
	start = DateOf(start)

	if count == 1 {
		return []Installment{{
			SequenceNumber: 1,
			Amount:         financed.Round(2),
			DueDate:        start,
			Status:         StatusPending,
		}}
	}

	n := decimal.NewFromInt(int64(count))
	base := floorCents(financed, n)
	last := financed.Sub(base.Mul(decimal.NewFromInt(int64(count - 1)))).Round(2)

	installments := make([]Installment, count)
	for i := 0; i < count; i++ {
		amount := base
		if i == count-1 {
			amount = last
		}
		installments[i] = Installment{
			SequenceNumber: i + 1,
			Amount:         amount,
			DueDate:        AddMonths(start, i),
			Status:         StatusPending,
		}
	}

	return installments
}

// floorCents calcula floor(amount / n) com precisão de centavos sem passar
// por uma divisão com casas decimais limitadas
func floorCents(amount, n decimal.Decimal) decimal.Decimal {
	q, r := amount.Shift(2).QuoRem(n, 0)
	if r.IsNegative() {
		q = q.Sub(decimal.NewFromInt(1))
	}
	return q.Shift(-2)
}

// AddMonths soma meses mantendo o dia do mês. Quando o dia não existe no mês
// de destino, usa o último dia desse mês (31/01 + 1 mês = 29/02 em ano bissexto).
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// DateOf descarta o horário, mantendo apenas a data do calendário em UTC
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
