package extraction

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Mock", func() {
	var (
		mock   *Mock
		result *Result
		err    error
	)

	BeforeEach(func() {
		mock = NewMock()
	})

	When("extracting any image", func() {
		JustBeforeEach(func() {
			result, err = mock.Extract(context.Background(), []byte("whatever"), "image/png")
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should flag the result as mock", func() {
			Expect(result.Mock).To(BeTrue())
		})

		It("should return a non-empty warning", func() {
			Expect(result.Warning).NotTo(BeEmpty())
		})

		It("should return the fixed two placeholder rows", func() {
			Expect(result.Items).To(HaveLen(2))
			Expect(result.Items[0].DRNumber).To(Equal("R-0315"))
			Expect(result.Items[1].DRNumber).To(Equal("R-0315"))
			Expect(result.Items[0].Item).To(ContainSubstring("Mock"))
		})
	})

	When("extracting different inputs", func() {
		It("returns identical rows regardless of image content", func() {
			a, err := mock.Extract(context.Background(), []byte("one"), "image/jpeg")
			Expect(err).NotTo(HaveOccurred())
			b, err := mock.Extract(context.Background(), []byte("two"), "application/pdf")
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Items).To(Equal(b.Items))
		})
	})
})
