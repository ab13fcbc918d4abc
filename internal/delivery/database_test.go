package delivery

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kbuenafe/dr2xlsx/internal/extraction"
)

var _ = Describe("BoltDB", func() {
	var (
		tempDir string
		db      *BoltDB
		err     error
	)

	BeforeEach(func() {
		tempDir, err = os.MkdirTemp("", "dr2xlsx-db-*")
		Expect(err).NotTo(HaveOccurred())

		db, err = NewBoltDB(filepath.Join(tempDir, "test.db"))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
		os.RemoveAll(tempDir)
	})

	sample := func(id string) *Extraction {
		return &Extraction{
			ID:          id,
			Filename:    id + "_receipt.jpg",
			ContentType: "image/jpeg",
			Items: []extraction.LineItem{
				{Date: "Dec 09, 2025", Qty: "10", Unit: "pcs", Item: "Widget", DRNumber: "R-0315"},
			},
			CreatedAt: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
		}
	}

	Describe("SaveExtraction and GetExtraction", func() {
		It("round-trips an extraction", func() {
			Expect(db.SaveExtraction(sample("ex1"))).To(Succeed())

			got, err := db.GetExtraction("ex1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal("ex1"))
			Expect(got.Items).To(HaveLen(1))
			Expect(got.Items[0].Item).To(Equal("Widget"))
		})

		It("overwrites on repeated save", func() {
			ext := sample("ex1")
			Expect(db.SaveExtraction(ext)).To(Succeed())
			ext.Items[0].Qty = "12"
			Expect(db.SaveExtraction(ext)).To(Succeed())

			got, err := db.GetExtraction("ex1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Items[0].Qty).To(Equal("12"))
		})

		It("returns an error for a missing ID", func() {
			_, err := db.GetExtraction("missing")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ListExtractions", func() {
		It("returns an empty slice when nothing is stored", func() {
			extractions, err := db.ListExtractions()
			Expect(err).NotTo(HaveOccurred())
			Expect(extractions).To(BeEmpty())
			Expect(extractions).NotTo(BeNil())
		})

		It("returns all stored extractions", func() {
			Expect(db.SaveExtraction(sample("ex1"))).To(Succeed())
			Expect(db.SaveExtraction(sample("ex2"))).To(Succeed())

			extractions, err := db.ListExtractions()
			Expect(err).NotTo(HaveOccurred())
			Expect(extractions).To(HaveLen(2))
		})
	})

	Describe("DeleteExtraction", func() {
		It("removes a stored extraction", func() {
			Expect(db.SaveExtraction(sample("ex1"))).To(Succeed())
			Expect(db.DeleteExtraction("ex1")).To(Succeed())

			_, err := db.GetExtraction("ex1")
			Expect(err).To(HaveOccurred())
		})

		It("is a no-op for a missing ID", func() {
			Expect(db.DeleteExtraction("missing")).To(Succeed())
		})
	})
})
