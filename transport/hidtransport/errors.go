package hidtransport

import "github.com/iotzio-project/iotzio-go/transport"

var transportErrClosed = transport.ErrClosed
