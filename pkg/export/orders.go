package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/tealeg/xlsx"

	"github.com/GhaniKale/skincare-marketplace/pkg/models"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var orderHeaders = []string{
	"Order Number", "Created At", "Status", "Customer", "Email", "Phone",
	"Shipping Address", "Units", "Total",
}

var lineHeaders = []string{
	"Order Number", "Product ID", "Product", "Price", "Quantity", "Subtotal",
}

// WriteOrders renders orders as a workbook with an "Orders" sheet (one row
// per order) and a "Line Items" sheet (one row per line).
func WriteOrders(w io.Writer, orders []models.Order) error {
	file := xlsx.NewFile()

	ordersSheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("add orders sheet: %w", err)
	}
	linesSheet, err := file.AddSheet("Line Items")
	if err != nil {
		return fmt.Errorf("add line items sheet: %w", err)
	}

	addHeader(ordersSheet, orderHeaders)
	addHeader(linesSheet, lineHeaders)

	for _, o := range orders {
		row := ordersSheet.AddRow()
		row.AddCell().SetString(o.OrderNumber)
		row.AddCell().SetString(o.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(o.Status)
		row.AddCell().SetString(o.CustomerName)
		row.AddCell().SetString(o.CustomerEmail)
		row.AddCell().SetString(o.CustomerPhone)
		row.AddCell().SetString(strings.ReplaceAll(o.ShippingAddress, "\n", ", "))
		row.AddCell().SetInt(o.GetItemCount())
		row.AddCell().SetString(o.TotalAmount.StringFixed(2))

		for _, li := range o.Items {
			lr := linesSheet.AddRow()
			lr.AddCell().SetString(o.OrderNumber)
			lr.AddCell().SetString(li.ProductID)
			lr.AddCell().SetString(li.ProductName)
			lr.AddCell().SetString(li.Price.StringFixed(2))
			lr.AddCell().SetInt(li.Quantity)
			lr.AddCell().SetString(li.Subtotal().StringFixed(2))
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func addHeader(sheet *xlsx.Sheet, headers []string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetString(h)
	}
}
