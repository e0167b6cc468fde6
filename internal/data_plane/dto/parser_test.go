package dto_test

import (
	"errors"
	"strconv"

	"ground-control/internal/data_plane/dto"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Parser", func() {
	var parser *dto.Parser

	BeforeEach(func() {
		var err error
		parser, err = dto.NewParser(dto.DefaultParserConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	Context("pressure lines", func() {
		It("assigns readings to sensors by position", func() {
			events, err := parser.Parse("10, 200, 450")
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(Equal([]dto.ParsedEvent{
				dto.PressureReading{Sensor: 1, Value: 10, Band: dto.BandSafe},
				dto.PressureReading{Sensor: 2, Value: 200, Band: dto.BandSafe},
				dto.PressureReading{Sensor: 3, Value: 450, Band: dto.BandUnsafe},
			}))
		})

		It("classifies with the configured bands", func() {
			config := dto.DefaultParserConfig()
			config.Bands = dto.BandConfig{
				Safe:   dto.Range{Min: 0, Max: 9},
				Mid:    dto.Range{Min: 10, Max: 19},
				Unsafe: dto.Range{Min: 20, Max: 1000},
			}
			custom, err := dto.NewParser(config)
			Expect(err).NotTo(HaveOccurred())

			events, err := custom.Parse("5, 15, 25")
			Expect(err).NotTo(HaveOccurred())
			Expect(events[0].(dto.PressureReading).Band).To(Equal(dto.BandSafe))
			Expect(events[1].(dto.PressureReading).Band).To(Equal(dto.BandMid))
			Expect(events[2].(dto.PressureReading).Band).To(Equal(dto.BandUnsafe))
		})

		It("rejects non numeric readings", func() {
			_, err := parser.Parse("10, abc, 450")
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, dto.ErrParse)).To(BeTrue())
			Expect(errors.Is(err, strconv.ErrSyntax)).To(BeTrue())

			var parseErr *dto.ParseError
			Expect(errors.As(err, &parseErr)).To(BeTrue())
			Expect(parseErr.Raw).To(Equal("10, abc, 450"))
		})
	})

	Context("valve lines", func() {
		It("reports an open valve for a non zero status", func() {
			events, err := parser.Parse("Toggle PIN3 1")
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(Equal([]dto.ParsedEvent{dto.ValveStatus{Pin: 3, Open: true}}))
		})

		It("reports a closed valve for a zero status", func() {
			events, err := parser.Parse("Toggle PIN3 0")
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(Equal([]dto.ParsedEvent{dto.ValveStatus{Pin: 3, Open: false}}))
		})

		It("accepts multi digit pins", func() {
			events, err := parser.Parse("Toggle PIN12 7")
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(Equal([]dto.ParsedEvent{dto.ValveStatus{Pin: 12, Open: true}}))
		})

		DescribeTable("malformed payloads",
			func(line string) {
				_, err := parser.Parse(line)
				Expect(err).To(MatchError(dto.ErrParse))
			},
			Entry("missing status", "Toggle PIN3"),
			Entry("non numeric pin", "Toggle PINx 1"),
			Entry("non numeric status", "Toggle PIN3 on"),
			Entry("negative pin", "Toggle PIN-3 1"),
			Entry("explicitly positive pin", "Toggle PIN+3 1"),
			Entry("signed status", "Toggle PIN3 -1"),
		)

		It("names the pin when it carries a sign", func() {
			_, err := parser.Parse("Toggle PIN-3 1")
			var parseErr *dto.ParseError
			Expect(errors.As(err, &parseErr)).To(BeTrue())
			Expect(parseErr.Reason).To(Equal("invalid pin"))
			Expect(parseErr.Raw).To(Equal("Toggle PIN-3 1"))
		})
	})

	It("forwards anything else as unrecognized", func() {
		events, err := parser.Parse("controller ready")
		Expect(err).NotTo(HaveOccurred())
		Expect(events).To(Equal([]dto.ParsedEvent{dto.Unrecognized{Raw: "controller ready"}}))
	})

	It("refuses an invalid configuration", func() {
		config := dto.DefaultParserConfig()
		config.Bands.Mid = dto.Range{Min: 10, Max: 1}
		_, err := dto.NewParser(config)
		Expect(err).To(HaveOccurred())

		config = dto.DefaultParserConfig()
		config.ValveMarker = ""
		_, err = dto.NewParser(config)
		Expect(err).To(HaveOccurred())
	})
})
