package rest

import "net/http"

type boardHandler struct {
	board boardViewer
}

// NewBoardHandler - read-only view of the shared board, rendered exactly as players see it.
func NewBoardHandler(board boardViewer) http.Handler {
	return &boardHandler{board: board}
}

func (that *boardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(that.board.Look())); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
