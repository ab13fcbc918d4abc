package delivery

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/kbuenafe/dr2xlsx/internal/extraction"
)

var _ = Describe("BuildWorkbook", func() {
	var (
		items []extraction.LineItem
		wb    *excelize.File
		rows  [][]string
		err   error
	)

	JustBeforeEach(func() {
		wb, err = BuildWorkbook(items)
		Expect(err).NotTo(HaveOccurred())
		rows, err = wb.GetRows("Delivery")
		Expect(err).NotTo(HaveOccurred())
	})

	When("exporting a single full row", func() {
		BeforeEach(func() {
			items = []extraction.LineItem{
				{Date: "Dec 09, 2025", Qty: "10", Unit: "pcs", Item: "Widget", DRNumber: "R-0315"},
			}
		})

		It("names the sheet Delivery", func() {
			Expect(wb.GetSheetList()).To(ConsistOf("Delivery"))
		})

		It("writes the header row with a leading empty cell", func() {
			Expect(rows[0]).To(Equal([]string{"", "Date", "Qty", "Unit", "Item", "DR#", "Remarks", "Received by"}))
		})

		It("writes the item row in column order with a leading empty cell", func() {
			Expect(rows[1]).To(Equal([]string{"", "Dec 09, 2025", "10", "pcs", "Widget", "R-0315"}))
		})

		It("sets the fixed column width hints", func() {
			width, err := wb.GetColWidth("Delivery", "A")
			Expect(err).NotTo(HaveOccurred())
			Expect(width).To(BeNumerically("==", 2))
			width, err = wb.GetColWidth("Delivery", "E")
			Expect(err).NotTo(HaveOccurred())
			Expect(width).To(BeNumerically("==", 30))
		})
	})

	When("optional fields are present", func() {
		BeforeEach(func() {
			items = []extraction.LineItem{
				{Date: "Dec 09, 2025", Qty: "10", Unit: "pcs", Item: "Widget", DRNumber: "R-0315", Remarks: "note", ReceivedBy: "J. Santos"},
			}
		})

		It("writes them in columns G and H", func() {
			Expect(rows[1]).To(Equal([]string{"", "Dec 09, 2025", "10", "pcs", "Widget", "R-0315", "note", "J. Santos"}))
		})
	})

	When("exporting multiple rows", func() {
		BeforeEach(func() {
			items = []extraction.LineItem{
				{Date: "Dec 09, 2025", Qty: "10", Unit: "pcs", Item: "Widget", DRNumber: "R-0315"},
				{Date: "Dec 09, 2025", Qty: "5", Unit: "box", Item: "Crate", DRNumber: "R-0315"},
				{Date: "Dec 09, 2025", Qty: "2", Unit: "set", Item: "Valves", DRNumber: "R-0315"},
			}
		})

		It("writes row k of the input as sheet row k+2", func() {
			Expect(rows).To(HaveLen(4))
			for k, item := range items {
				Expect(rows[k+1][1]).To(Equal(item.Date))
				Expect(rows[k+1][2]).To(Equal(item.Qty))
				Expect(rows[k+1][3]).To(Equal(item.Unit))
				Expect(rows[k+1][4]).To(Equal(item.Item))
				Expect(rows[k+1][5]).To(Equal(item.DRNumber))
			}
		})
	})

	When("exporting no rows", func() {
		BeforeEach(func() {
			items = nil
		})

		It("produces only the header row", func() {
			Expect(rows).To(HaveLen(1))
		})
	})
})

var _ = Describe("ExportFilename", func() {
	It("embeds the four-digit year of the given moment", func() {
		Expect(ExportFilename(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))).To(Equal("Manila Delivery 2026.xlsx"))
	})

	It("produces the same name for two exports in the same year", func() {
		jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		dec := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
		Expect(ExportFilename(jan)).To(Equal(ExportFilename(dec)))
	})
})
