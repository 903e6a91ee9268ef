package id_test

import (
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/commitrelay/common/id"
)

var _ = Describe("id", func() {
	BeforeEach(func() {
		Expect(id.Init(1)).To(Succeed())
	})

	It("generates increasing ids", func() {
		first := id.New()
		second := id.New()
		Expect(second).To(BeNumerically(">", first))
	})

	It("formats string ids in base 10", func() {
		s := id.NewString()
		parsed, err := strconv.ParseInt(s, 10, 64)
		Expect(err).ToNot(HaveOccurred())
		Expect(parsed).To(BeNumerically(">", 0))
	})
})
