package delivery

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LocalStorage", func() {
	var (
		tempDir string
		storage *LocalStorage
		err     error
	)

	BeforeEach(func() {
		tempDir, err = os.MkdirTemp("", "dr2xlsx-storage-*")
		Expect(err).NotTo(HaveOccurred())

		storage, err = NewLocalStorage(filepath.Join(tempDir, "uploads"))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	It("creates the base directory", func() {
		info, err := os.Stat(filepath.Join(tempDir, "uploads"))
		Expect(err).NotTo(HaveOccurred())
		Expect(info.IsDir()).To(BeTrue())
	})

	Describe("Save and Get", func() {
		It("round-trips file data", func() {
			path, err := storage.Save("receipt.jpg", []byte("image-data"))
			Expect(err).NotTo(HaveOccurred())
			Expect(path).To(Equal("receipt.jpg"))

			data, err := storage.Get(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(Equal([]byte("image-data")))
		})

		It("returns an error for a missing file", func() {
			_, err := storage.Get("missing.jpg")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Delete", func() {
		It("removes a stored file", func() {
			path, err := storage.Save("receipt.jpg", []byte("image-data"))
			Expect(err).NotTo(HaveOccurred())

			Expect(storage.Delete(path)).To(Succeed())
			_, err = storage.Get(path)
			Expect(err).To(HaveOccurred())
		})

		It("returns an error for a missing file", func() {
			Expect(storage.Delete("missing.jpg")).NotTo(Succeed())
		})
	})
})
