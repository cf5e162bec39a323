package lambda

import (
	"fmt"
	"strings"
)

// ProxySource is the AWS service that invokes the lambda.
type ProxySource string

const (
	ProxySourceApiGatewayV1 ProxySource = "API_GW_V1"
	ProxySourceApiGatewayV2 ProxySource = "API_GW_V2"
	ProxySourceAlb          ProxySource = "ALB"
)

func (p ProxySource) String() string {
	return string(p)
}

// ParseProxySource parses s case-insensitively.
func ParseProxySource(s string) (ProxySource, error) {
	switch source := ProxySource(strings.ToUpper(strings.TrimSpace(s))); source {
	case ProxySourceApiGatewayV1, ProxySourceApiGatewayV2, ProxySourceAlb:
		return source, nil
	}

	return "", fmt.Errorf("invalid proxy source: %q", s)
}

type Config struct {
	// ProxySource is the source of the AWS Lambda event.
	ProxySource ProxySource `conf:"lambda_proxy_source"`
}
