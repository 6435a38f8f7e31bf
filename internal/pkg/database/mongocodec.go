package database

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var decimalType = reflect.TypeOf(decimal.Decimal{})

// NewMongoRegistry stores decimal.Decimal as Decimal128 and names struct
// fields after their json tag when no bson tag is present.
func NewMongoRegistry() *bsoncodec.Registry {
	rb := bson.NewRegistryBuilder()

	structCodec, err := bsoncodec.NewStructCodec(bsoncodec.JSONFallbackStructTagParser)
	if err != nil {
		panic(fmt.Sprintf("mongo struct codec: %v", err))
	}
	rb.RegisterDefaultEncoder(reflect.Struct, structCodec)
	rb.RegisterDefaultDecoder(reflect.Struct, structCodec)

	rb.RegisterTypeEncoder(decimalType, bsoncodec.ValueEncoderFunc(encodeDecimal))
	rb.RegisterTypeDecoder(decimalType, bsoncodec.ValueDecoderFunc(decodeDecimal))

	return rb.Build()
}

func encodeDecimal(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != decimalType {
		return bsoncodec.ValueEncoderError{Name: "DecimalEncodeValue", Types: []reflect.Type{decimalType}, Received: val}
	}
	d := val.Interface().(decimal.Decimal)
	// coefficient and exponent keep the scale, so 200.00 stays 200.00
	d128, ok := primitive.ParseDecimal128FromBigInt(d.Coefficient(), int(d.Exponent()))
	if !ok {
		return fmt.Errorf("cannot store %s as Decimal128", d.String())
	}
	return vw.WriteDecimal128(d128)
}

func decodeDecimal(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != decimalType {
		return bsoncodec.ValueDecoderError{Name: "DecimalDecodeValue", Types: []reflect.Type{decimalType}, Received: val}
	}

	var (
		raw string
		err error
	)
	switch vr.Type() {
	case bsontype.Decimal128:
		var d128 primitive.Decimal128
		d128, err = vr.ReadDecimal128()
		raw = d128.String()
	case bsontype.String:
		raw, err = vr.ReadString()
	case bsontype.Double:
		var f float64
		f, err = vr.ReadDouble()
		raw = strconv.FormatFloat(f, 'f', -1, 64)
	case bsontype.Int32:
		var i int32
		i, err = vr.ReadInt32()
		raw = strconv.FormatInt(int64(i), 10)
	case bsontype.Int64:
		var i int64
		i, err = vr.ReadInt64()
		raw = strconv.FormatInt(i, 10)
	case bsontype.Null:
		err = vr.ReadNull()
		raw = "0"
	default:
		return fmt.Errorf("cannot decode %v into decimal", vr.Type())
	}
	if err != nil {
		return err
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("invalid decimal %q: %w", raw, err)
	}
	val.Set(reflect.ValueOf(d))
	return nil
}
