package settlement_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pos/internal/domain/settlement"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Carrito del escenario de referencia: 2 × 8500 + 1 × 3200, descuento 1000.
func carritoBase() []settlement.LineItem {
	return []settlement.LineItem{
		{UnitPrice: d("8500"), Quantity: 2},
		{UnitPrice: d("3200"), Quantity: 1},
	}
}

func TestComputeTotals_Escenario(t *testing.T) {
	totals := settlement.ComputeTotals(carritoBase(), d("1000"))
	assert.True(t, d("20200.00").Equal(totals.Subtotal), "subtotal = %s", totals.Subtotal)
	assert.True(t, d("19200.00").Equal(totals.Total), "total = %s", totals.Total)
}

func TestComputeTotals_TotalNuncaNegativo(t *testing.T) {
	totals := settlement.ComputeTotals(carritoBase(), d("999999"))
	assert.False(t, totals.Total.IsNegative(), "el total no puede ser negativo: %s", totals.Total)
	assert.True(t, totals.Total.IsZero())
}

// Idempotencia: dos llamadas con entradas idénticas producen salida idéntica bit a bit.
func TestComputeTotals_Idempotente(t *testing.T) {
	a := settlement.ComputeTotals(carritoBase(), d("1000"))
	b := settlement.ComputeTotals(carritoBase(), d("1000"))
	assert.Equal(t, a, b)
}

func TestComputeDiscountAmount_PorcentajeAcotado(t *testing.T) {
	sub := d("20200")

	assert.True(t, d("2020.00").Equal(settlement.ComputeDiscountAmount(sub, d("10"), settlement.DiscountPercentage)))

	// 150% no puede exceder el subtotal
	capped := settlement.ComputeDiscountAmount(sub, d("150"), settlement.DiscountPercentage)
	assert.True(t, sub.Round(2).Equal(capped))

	// Propiedad: para 0 <= value <= 100, el descuento nunca supera el subtotal
	for _, v := range []string{"0", "0.5", "33.33", "99.99", "100"} {
		amt := settlement.ComputeDiscountAmount(sub, d(v), settlement.DiscountPercentage)
		assert.False(t, amt.GreaterThan(sub), "descuento %s%% = %s excede el subtotal", v, amt)
	}
}

func TestComputeDiscountAmount_FijoAcotado(t *testing.T) {
	sub := d("500")
	assert.True(t, d("200.00").Equal(settlement.ComputeDiscountAmount(sub, d("200"), settlement.DiscountFixed)))
	assert.True(t, d("500.00").Equal(settlement.ComputeDiscountAmount(sub, d("800"), settlement.DiscountFixed)))
}

func TestRound2_HalfUp(t *testing.T) {
	// Regla documentada: half-up. 10.005 → 10.01, determinista.
	assert.Equal(t, "10.01", settlement.Round2(d("10.005")).StringFixed(2))
	assert.Equal(t, "10.00", settlement.Round2(d("10.004")).StringFixed(2))
}

func TestComputeChange(t *testing.T) {
	// Escenario: efectivo 20000 sobre total 19200 → cambio 800.00
	assert.Equal(t, "800.00", settlement.ComputeChange(d("20000"), d("19200")).StringFixed(2))

	// El residuo binario no se filtra al cambio: 100 − 99.999 → 0.00, no 0.001
	assert.Equal(t, "0.00", settlement.ComputeChange(d("100"), d("99.999")).StringFixed(2))

	// Pago corto: el cambio reporta 0, el rechazo es del validador
	assert.Equal(t, "0.00", settlement.ComputeChange(d("100"), d("200")).StringFixed(2))
}

func TestValidateSinglePayment(t *testing.T) {
	total := d("19200")

	// Efectivo por debajo del total: venta corta, rechazar
	err := settlement.ValidateSinglePayment(d("19000"), total, settlement.MethodCash)
	assert.ErrorIs(t, err, settlement.ErrInsufficientPayment)

	require.NoError(t, settlement.ValidateSinglePayment(d("20000"), total, settlement.MethodCash))
	require.NoError(t, settlement.ValidateSinglePayment(d("19200"), total, settlement.MethodCash))

	// Para instrumentos no-efectivo la pasarela es la autoridad: no se compara aquí
	assert.NoError(t, settlement.ValidateSinglePayment(d("0"), total, settlement.MethodCard))
	assert.NoError(t, settlement.ValidateSinglePayment(d("0"), total, settlement.MethodTransfer))
	assert.NoError(t, settlement.ValidateSinglePayment(d("0"), total, settlement.MethodMobile))
}

func TestValidateSplitPayment_SumaExacta(t *testing.T) {
	entries := []settlement.SplitEntry{
		{Amount: d("200000"), Method: settlement.MethodCash},
		{Amount: d("200000"), Method: settlement.MethodTransfer},
		{Amount: d("56697.86"), Method: settlement.MethodMobile},
	}
	assert.NoError(t, settlement.ValidateSplitPayment(entries, d("456697.86")))
}

func TestValidateSplitPayment_PagoInsuficiente(t *testing.T) {
	entries := []settlement.SplitEntry{{Amount: d("100"), Method: settlement.MethodCash}}
	err := settlement.ValidateSplitPayment(entries, d("200"))
	assert.ErrorIs(t, err, settlement.ErrSplitUnderpaid)
}

func TestValidateSplitPayment_MontoInvalido(t *testing.T) {
	cases := [][]settlement.SplitEntry{
		{{Amount: d("0"), Method: settlement.MethodCash}, {Amount: d("500"), Method: settlement.MethodCard}},
		{{Amount: d("-10"), Method: settlement.MethodCash}},
	}
	for _, entries := range cases {
		err := settlement.ValidateSplitPayment(entries, d("100"))
		assert.ErrorIs(t, err, settlement.ErrSplitInvalidAmount)
	}
}

// El redondeo de la suma ocurre una sola vez al final: tres entradas de 33.333
// suman 99.999 → 100.00 redondeado, suficiente para un total de 100.
func TestValidateSplitPayment_RedondeoUnaSolaVez(t *testing.T) {
	entries := []settlement.SplitEntry{
		{Amount: d("33.333"), Method: settlement.MethodCash},
		{Amount: d("33.333"), Method: settlement.MethodCard},
		{Amount: d("33.333"), Method: settlement.MethodMobile},
	}
	assert.NoError(t, settlement.ValidateSplitPayment(entries, d("100")))
}

func TestValidateSplitPayment_SobrepagoPermitido(t *testing.T) {
	entries := []settlement.SplitEntry{
		{Amount: d("300"), Method: settlement.MethodCash},
		{Amount: d("300"), Method: settlement.MethodCard},
	}
	require.NoError(t, settlement.ValidateSplitPayment(entries, d("500")))

	// El sobrante se reporta como una sola cifra de cambio agregada
	change := settlement.ComputeChange(settlement.SplitTendered(entries), d("500"))
	assert.Equal(t, "100.00", change.StringFixed(2))
}

func TestParsePaymentMethod(t *testing.T) {
	m, ok := settlement.ParsePaymentMethod("CASH")
	require.True(t, ok)
	assert.Equal(t, settlement.MethodCash, m)

	_, ok = settlement.ParsePaymentMethod("CHEQUE")
	assert.False(t, ok)
}
