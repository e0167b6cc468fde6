package avro_test

import (
	"encoding/binary"
	"errors"
	"time"

	"ground-control/internal/data_plane/dto"
	"ground-control/internal/infra/avro"
	mockavro "ground-control/test/unit/doubles/infra/avro"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("TelemetryRecord", func() {
	It("should carry valve and pressure readings through the envelope mapping", func() {
		envelope := dto.Envelope{
			ID:         "evt-1",
			Station:    "stand-a",
			Kind:       dto.KindPressureReading,
			OccurredAt: time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC),
			Line:       "10, 200, 450",
			Pressure:   &dto.PressureReading{Sensor: 3, Value: 450, Band: dto.BandUnsafe},
		}

		record := avro.ToTelemetryRecord(envelope)
		Expect(record.ValvePin).To(BeNil())
		Expect(*record.Band).To(Equal("UNSAFE"))

		back := record.ToEnvelope()
		Expect(back.Pressure).To(Equal(envelope.Pressure))
		Expect(back.Valve).To(BeNil())
		Expect(back.OccurredAt).To(Equal(time.Date(2026, 3, 1, 12, 0, 0, 123000000, time.UTC)))
	})
})

var _ = Describe("AvroCodec", func() {
	It("should encode and decode a record", func() {
		codec, err := avro.NewAvroCodec()
		Expect(err).NotTo(HaveOccurred())

		record := avro.ToTelemetryRecord(dto.Envelope{
			ID:         "evt-2",
			Station:    "stand-a",
			Kind:       dto.KindValveStatus,
			OccurredAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			Valve:      &dto.ValveStatus{Pin: 3, Open: true},
		})

		data, err := codec.Encode(record)
		Expect(err).NotTo(HaveOccurred())

		decoded, err := codec.Decode(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded.(*avro.TelemetryRecord).ToEnvelope().Valve).To(Equal(&dto.ValveStatus{Pin: 3, Open: true}))
	})

	It("should refuse foreign types", func() {
		codec, err := avro.NewAvroCodec()
		Expect(err).NotTo(HaveOccurred())

		_, err = codec.Encode("not a record")
		Expect(err).To(MatchError(ContainSubstring("no Avro schema")))
	})
})

var _ = Describe("ConfluentAvroCodec", func() {
	var (
		ctrl     *gomock.Controller
		registry *mockavro.MockSchemaRegistry
		codec    *avro.ConfluentAvroCodec
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		registry = mockavro.NewMockSchemaRegistry(ctrl)

		var err error
		codec, err = avro.NewConfluentAvroCodec(registry)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should register the schema once and frame records with its id", func() {
		registry.EXPECT().LatestSchemaID("telemetry_records-value").Return(0, errors.New("subject not found"))
		registry.EXPECT().RegisterSchema("telemetry_records-value", avro.TelemetryRecordSchema()).Return(42, nil)
		registry.EXPECT().SchemaByID(42).Return(avro.TelemetryRecordSchema(), nil)

		record := avro.ToTelemetryRecord(dto.Envelope{
			ID:         "evt-3",
			Station:    "stand-a",
			Kind:       dto.KindPressureReading,
			OccurredAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			Pressure:   &dto.PressureReading{Sensor: 1, Value: 10, Band: dto.BandSafe},
		})
		record.TraceID = "4bf92f3577b34da6a3ce929d0e0e4736"

		first, err := codec.Encode(record)
		Expect(err).NotTo(HaveOccurred())
		_, err = codec.Encode(record)
		Expect(err).NotTo(HaveOccurred())

		Expect(first[0]).To(Equal(byte(0)))
		Expect(binary.BigEndian.Uint32(first[1:5])).To(Equal(uint32(42)))

		decoded, err := codec.Decode(first)
		Expect(err).NotTo(HaveOccurred())
		got := decoded.(*avro.TelemetryRecord)
		Expect(got.TraceID).To(Equal(record.TraceID))
		Expect(got.ToEnvelope().Pressure).To(Equal(&dto.PressureReading{Sensor: 1, Value: 10, Band: dto.BandSafe}))
		Expect(got.OccurredAt.Equal(record.OccurredAt)).To(BeTrue())
	})

	It("should reuse a schema that is already registered", func() {
		registry.EXPECT().LatestSchemaID("telemetry_records-value").Return(7, nil)
		registry.EXPECT().SchemaByID(7).Return(avro.TelemetryRecordSchema(), nil)

		data, err := codec.Encode(avro.ToTelemetryRecord(dto.Envelope{ID: "evt-4", Kind: dto.KindLaunch}))
		Expect(err).NotTo(HaveOccurred())
		Expect(binary.BigEndian.Uint32(data[1:5])).To(Equal(uint32(7)))
	})

	It("should reject data without the wire header", func() {
		_, err := codec.Decode([]byte{1, 0, 0, 0, 1, 2})
		Expect(err).To(MatchError(avro.ErrWireFormat))

		_, err = codec.Decode([]byte{0, 1})
		Expect(err).To(MatchError(avro.ErrWireFormat))
	})
})
