package importer

import "github.com/simaogato/cryptoledger-backend/internal/domain"

// Column names as they appear in the spreadsheet exports. Matching is exact and
// case-sensitive; column order does not matter.
const (
	ColDate = "Fecha"

	ColWallet     = "ID_Cartera"
	ColAsset      = "Cripto"
	ColFiatSymbol = "FIAT_Simbolo"

	ColDepositQuantity  = "Cripto adquirido"
	ColDepositTotalUSD  = "USD Invertido"
	ColDepositUnitUSD   = "Costo Cripto / USD"
	ColDepositFiatTotal = "FIAT Invertido"

	ColWithdrawalQuantity  = "Crypto Salido"
	ColWithdrawalUnitUSD   = "Precio USD Venta"
	ColWithdrawalTotalUSD  = "USD Total Salido"
	ColWithdrawalFiatTotal = "FIAT Recibido"

	ColTransferSource   = "ID_Cartera_Origen"
	ColTransferDest     = "ID_Cartera_Destino"
	ColTransferSent     = "Monto Envio"
	ColTransferReceived = "Monto recibido"
	ColTransferFee      = "Comision"

	ColSwapSourceAsset = "Cripto origen"
	ColSwapSent        = "Monto Descontado"
	ColSwapDestAsset   = "Cripto final"
	ColSwapReceived    = "Monto Adquirido"
	ColSwapSourcePrice = "precio de venta"
	ColSwapDestPrice   = "precio de compra"
)

// RequiredColumns returns the columns a file of the given kind must have
func RequiredColumns(kind domain.MovementKind) []string {
	switch kind {
	case domain.KindDeposit:
		return []string{ColDate, ColWallet, ColAsset, ColDepositQuantity, ColDepositTotalUSD, ColDepositUnitUSD}
	case domain.KindWithdrawal:
		return []string{ColDate, ColAsset, ColWallet, ColWithdrawalQuantity, ColWithdrawalUnitUSD, ColWithdrawalTotalUSD}
	case domain.KindTransfer:
		return []string{ColDate, ColAsset, ColTransferSource, ColTransferDest, ColTransferSent, ColTransferReceived}
	case domain.KindSwap:
		return []string{ColDate, ColWallet, ColSwapSourceAsset, ColSwapSent, ColSwapDestAsset, ColSwapReceived,
			ColSwapSourcePrice, ColSwapDestPrice}
	}
	return nil
}

// ValidateHeaders checks that every required column is present.
// The error lists all missing columns, not only the first.
// On success it returns the index of each header name; the first occurrence wins.
func ValidateHeaders(header, required []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, name := range required {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.MissingColumnsError{Columns: missing}
	}
	return index, nil
}
