package server

// Server groups the HTTP handlers of the public API.
type Server struct {
	DealServer
	ViewServer
}

func NewServer(
	dealServer DealServer,
	viewServer ViewServer,
) Server {
	return Server{
		DealServer: dealServer,
		ViewServer: viewServer,
	}
}
