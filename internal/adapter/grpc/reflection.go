package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
	reflectionpb "google.golang.org/grpc/reflection/grpc_reflection_v1"

	"github.com/simaogato/cryptoledger-backend/internal/adapter/grpc/ledgerv1"
)

// RegisterReflection serves gRPC reflection for the services registered on s that
// have protobuf descriptors, such as the health service. LedgerService messages are
// JSON encoded and have none, so it is left out.
func RegisterReflection(s *grpc.Server) {
	reflectionpb.RegisterServerReflectionServer(s, reflection.NewServerV1(reflection.ServerOptions{
		Services: describedServices{s},
	}))
}

// describedServices hides the services without protobuf descriptors
type describedServices struct {
	reflection.ServiceInfoProvider
}

func (d describedServices) GetServiceInfo() map[string]grpc.ServiceInfo {
	info := d.ServiceInfoProvider.GetServiceInfo()
	delete(info, ledgerv1.ServiceName)
	return info
}
