package dto_test

import (
	"time"

	"ground-control/internal/data_plane/dto"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Envelope", func() {
	It("should recognise every published kind", func() {
		for _, kind := range dto.EnvelopeKinds {
			Expect(dto.IsEnvelopeKind(string(kind))).To(BeTrue(), string(kind))
		}
		Expect(dto.IsEnvelopeKind("telemetry")).To(BeFalse())
		Expect(dto.IsEnvelopeKind("")).To(BeFalse())
	})

	It("should keep optional readings through messagepack", func() {
		envelope := dto.Envelope{
			ID:         "evt-1",
			Station:    "stand-a",
			Kind:       dto.KindPressureReading,
			OccurredAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			Pressure:   &dto.PressureReading{Sensor: 2, Value: 450, Band: dto.BandUnsafe},
		}

		data, err := envelope.ToMessagePack()
		Expect(err).NotTo(HaveOccurred())

		decoded, err := dto.EnvelopeFromMessagePack(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded.Pressure).To(Equal(envelope.Pressure))
		Expect(decoded.Valve).To(BeNil())
		Expect(decoded.OccurredAt.Equal(envelope.OccurredAt)).To(BeTrue())
	})
})
