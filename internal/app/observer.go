package app

// Observer receives business events, typically to update metrics.
type Observer interface {
	InvoiceCreated()
	PaymentRecorded(currency string)
	SignIn(success bool)
}

type noopObserver struct{}

func (noopObserver) InvoiceCreated()        {}
func (noopObserver) PaymentRecorded(string) {}
func (noopObserver) SignIn(bool)            {}

func observerOrNoop(o Observer) Observer {
	if o == nil {
		return noopObserver{}
	}
	return o
}
