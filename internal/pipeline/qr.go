package pipeline

import (
	"fmt"
	"strings"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"

	"cardforge/internal/card"
)

// writeShareQR writes a QR code PNG encoding the deck summary, so a printed
// game box can link back to its card list.
func writeShareQR(path, theme string, cards []*card.Card) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Cardforge: %s\n", card.TitleWords(theme))
	for i, c := range cards {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, c.Name, c.CardType)
	}

	qrc, err := qrcode.NewWith(b.String(),
		qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium),
		qrcode.WithEncodingMode(qrcode.EncModeByte),
	)
	if err != nil {
		return fmt.Errorf("create QR code: %w", err)
	}

	w, err := standard.New(path,
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithQRWidth(8),
	)
	if err != nil {
		return fmt.Errorf("create QR writer: %w", err)
	}

	if err := qrc.Save(w); err != nil {
		return fmt.Errorf("save QR code: %w", err)
	}
	return nil
}
