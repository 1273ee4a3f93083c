package retailv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/types/known/emptypb"
)

func TestCodecRegistered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestCodecPlainStruct(t *testing.T) {
	in := &ProcessSaleRequest{
		Items:         []*SaleLine{{ProductID: "A", Quantity: 3}},
		CustomerName:  "Rina",
		PaymentMethod: "cash",
	}

	data, err := Codec{}.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"product_id":"A"`)
	assert.NotContains(t, string(data), "idempotency_key")

	var out ProcessSaleRequest
	require.NoError(t, Codec{}.Unmarshal(data, &out))
	assert.Equal(t, in, &out)
}

func TestCodecProtoMessage(t *testing.T) {
	data, err := Codec{}.Marshal(&emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	require.NoError(t, Codec{}.Unmarshal(data, &emptypb.Empty{}))
	require.NoError(t, Codec{}.Unmarshal(nil, &emptypb.Empty{}))
}
