package stats_service_api

import (
	"context"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const userHeader = "X-User-ID"

// RegisterGateway exposes the stats service as REST under /v1.
func RegisterGateway(mux *runtime.ServeMux, client *Client) error {
	routes := []struct {
		path string
		call func(context.Context, *structpb.Struct) (proto.Message, error)
	}{
		{"/v1/stats", func(ctx context.Context, in *structpb.Struct) (proto.Message, error) {
			return client.GetStats(ctx, in)
		}},
		{"/v1/stats/departures-by-country", func(ctx context.Context, in *structpb.Struct) (proto.Message, error) {
			return client.GetDeparturesByCountry(ctx, in)
		}},
		{"/v1/stats/time-grouping", func(ctx context.Context, in *structpb.Struct) (proto.Message, error) {
			return client.GetTimeGrouping(ctx, in)
		}},
		{"/v1/map/paths", func(ctx context.Context, in *structpb.Struct) (proto.Message, error) {
			return client.GetMapPaths(ctx, in)
		}},
	}

	for _, route := range routes {
		call := route.call
		err := mux.HandlePath(http.MethodGet, route.path, func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
			ctx := r.Context()
			_, outbound := runtime.MarshalerForRequest(mux, r)

			in, err := requestStruct(r)
			if err != nil {
				runtime.HTTPError(ctx, mux, outbound, w, r, err)
				return
			}
			resp, err := call(ctx, in)
			if err != nil {
				runtime.HTTPError(ctx, mux, outbound, w, r, err)
				return
			}
			runtime.ForwardResponseMessage(ctx, mux, outbound, w, r, resp)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func requestStruct(r *http.Request) (*structpb.Struct, error) {
	fields := map[string]any{"user_id": r.Header.Get(userHeader)}
	q := r.URL.Query()
	for _, name := range []string{"selector", "mode"} {
		if v := q.Get(name); v != "" {
			fields[name] = v
		}
	}
	return structpb.NewStruct(fields)
}
