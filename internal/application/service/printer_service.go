package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"github.com/sangkips/bebidas-pos/pkg/printer"
)

const receiptDateLayout = "02/01/2006 15:04"

// PrinterService composes receipts and sends them to the thermal printer.
type PrinterService struct {
	printer     printer.Printer
	orderRepo   repository.OrderRepository
	settings    *SettingsService
	printerType string
	width       int
	rt          Runtime
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	orderRepo repository.OrderRepository,
	settings *SettingsService,
	printerType string,
	width int,
	rt Runtime,
) *PrinterService {
	if width <= 0 {
		width = printer.Width58mm
	}
	return &PrinterService{
		printer:     p,
		orderRepo:   orderRepo,
		settings:    settings,
		printerType: printerType,
		width:       width,
		rt:          rt.withDefaults(),
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.configured(),
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printerType,
		Width:      s.width,
	}
}

func (s *PrinterService) configured() bool {
	return s.printerType != printer.TypeNone && s.printerType != ""
}

// TestPrint sends a sample receipt to the printer.
// The receipt is returned so it can be shown when no printer is configured.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	header, footer := s.storeIdentity(ctx)
	receipt := &entity.Receipt{
		Header:        header,
		OrderNumber:   entity.FormatOrderNumber(0),
		Date:          s.rt.now().Format(receiptDateLayout),
		Customer:      "Consumidor",
		PaymentMethod: "cash",
		Status:        "paid",
		Items: []entity.ReceiptItem{
			{Name: "Cerveja Lata 350ml", Quantity: 3, UnitPrice: 490, Total: 1470},
			{Name: "Água Mineral 500ml", Quantity: 1, UnitPrice: 250, Total: 250},
		},
		Total:  1720,
		Footer: footer,
	}
	return receipt, s.send(ctx, receipt)
}

// PrintOrderReceipt prints the receipt of an order.
func (s *PrinterService) PrintOrderReceipt(ctx context.Context, orderID uuid.UUID) (*entity.Receipt, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	header, footer := s.storeIdentity(ctx)
	receipt := &entity.Receipt{
		Header:        header,
		OrderNumber:   order.OrderNumber,
		Date:          order.CreatedAt.In(s.rt.Location).Format(receiptDateLayout),
		Customer:      order.CustomerName,
		PaymentMethod: order.PaymentMethod.String(),
		Status:        order.Status.String(),
		Items:         make([]entity.ReceiptItem, 0, len(order.Lines)),
		Total:         order.Total,
		Footer:        footer,
	}
	for _, line := range order.Lines {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      line.ProductName,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Total:     line.Subtotal,
		})
	}

	return receipt, s.send(ctx, receipt)
}

// storeIdentity reads header and footer from the settings; failures fall back to defaults
func (s *PrinterService) storeIdentity(ctx context.Context) (entity.ReceiptHeader, string) {
	settings := entity.DefaultStoreSettings()
	if s.settings != nil {
		if stored, err := s.settings.GetSettings(ctx); err != nil {
			s.rt.logger(ctx).Warn("store settings unavailable for receipt", zap.Error(err))
		} else {
			settings = stored
		}
	}
	return entity.ReceiptHeader{
		StoreName: settings.StoreName,
		Address:   settings.Address,
		Phone:     settings.Phone,
		TaxID:     settings.TaxID,
	}, settings.ReceiptFooter
}

func (s *PrinterService) send(ctx context.Context, receipt *entity.Receipt) error {
	if !s.configured() {
		return nil
	}
	data := FormatReceipt(receipt, s.width)
	if err := s.printer.Print(ctx, data); err != nil {
		s.rt.logger(ctx).Error("receipt print failed",
			zap.String("order_number", receipt.OrderNumber),
			zap.String("printer_type", s.printerType),
			zap.Error(err),
		)
		return fmt.Errorf("print receipt %s: %w", receipt.OrderNumber, err)
	}
	s.rt.logger(ctx).Info("receipt printed", zap.String("order_number", receipt.OrderNumber))
	return nil
}

// FormatReceipt renders a receipt as ESC/POS bytes for a printer of width columns.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)
	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.TextF("Tel: %s", r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("CNPJ: %s", r.Header.TaxID)
	}

	doc.SetAlign(printer.AlignLeft).Separator('=')
	doc.KeyValue("Order:", r.OrderNumber)
	doc.KeyValue("Date:", r.Date)
	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, item.Total.String())
		if item.Quantity > 1 {
			doc.TextF("   @ %s", item.UnitPrice.String())
		}
	}

	doc.Separator('-').
		SetBold(true).
		KeyValue("TOTAL:", r.Total.String()).
		SetBold(false)
	if r.PaymentMethod != "" {
		doc.KeyValue("Payment:", r.PaymentMethod)
	}
	doc.KeyValue("Status:", r.Status)

	if r.Footer != "" {
		doc.Separator('=').
			SetAlign(printer.AlignCenter).
			Text(r.Footer)
	}

	doc.FeedLines(3).PartialCut()
	return doc.Bytes()
}
