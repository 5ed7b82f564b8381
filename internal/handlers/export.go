package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/niranjan1960/banos-dessert/internal/model"
)

var exportHeaders = []string{
	"Order ID", "Date", "Status", "Customer", "Phone", "Address", "City", "ZIP",
	"Items", "Subtotal", "Delivery Fee", "Total", "Instructions", "Admin Notes",
}

// Export streams the filtered order list as an .xlsx workbook.
func (h *OrdersHTTP) Export(c *gin.Context) {
	orders, err := h.S.List(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		respondError(c, h.Log, err, "Failed to fetch orders")
		return
	}

	file, err := ordersWorkbook(orders)
	if err != nil {
		respondError(c, h.Log, err, "Failed to create Excel sheet")
		return
	}

	name := fmt.Sprintf("orders-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+name)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")
	c.Status(http.StatusOK)

	if err := file.Write(c.Writer); err != nil {
		h.Log.Error("write order export", slog.Any("err", err))
	}
}

func ordersWorkbook(orders []model.Order) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetString(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetString(o.ID)
		row.AddCell().SetString(o.Date.Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(string(o.Status))
		row.AddCell().SetString(o.DeliveryInfo.FullName)
		row.AddCell().SetString(o.DeliveryInfo.Phone)
		row.AddCell().SetString(o.DeliveryInfo.Address)
		row.AddCell().SetString(o.DeliveryInfo.City)
		row.AddCell().SetString(o.DeliveryInfo.ZipCode)
		row.AddCell().SetString(itemSummary(o.Items))
		row.AddCell().SetFloatWithFormat(o.Subtotal.InexactFloat64(), "0.00")
		row.AddCell().SetFloatWithFormat(o.DeliveryFee.InexactFloat64(), "0.00")
		row.AddCell().SetFloatWithFormat(o.Total.InexactFloat64(), "0.00")
		row.AddCell().SetString(o.DeliveryInfo.SpecialInstructions)
		row.AddCell().SetString(o.AdminNotes)
	}
	return file, nil
}

func itemSummary(items []model.CartLine) string {
	s := ""
	for i, it := range items {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%dx %s", it.Quantity, it.Name)
	}
	return s
}
