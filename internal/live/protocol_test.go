package live

import (
	"testing"
)

func TestEncodeRequiresTypeAndPayload(t *testing.T) {
	if _, err := Encode("", Input{}); err == nil {
		t.Error("empty type accepted")
	}
	if _, err := Encode(TypeInput, nil); err == nil {
		t.Error("nil payload accepted")
	}
}

func TestDecode(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"t":"input","p":{"action":"select","target":7}}`))
	if err != nil {
		t.Fatal(err)
	}
	in, err := DecodePayload[Input](env)
	if err != nil || in.Action != "select" || in.Target != 7 {
		t.Errorf("input = %+v, %v", in, err)
	}

	for _, bad := range []string{``, `[]`, `{"p":{}}`} {
		if _, err := DecodeEnvelope([]byte(bad)); err == nil {
			t.Errorf("DecodeEnvelope(%q) accepted", bad)
		}
	}
	if _, err := DecodePayload[Input](Envelope{T: TypeInput}); err == nil {
		t.Error("empty payload accepted")
	}
}

func TestOutboxDropsOldest(t *testing.T) {
	o := newOutbox(2)
	for _, m := range []string{"a", "b", "c", "d"} {
		o.Send([]byte(m))
	}
	if o.Dropped() != 2 {
		t.Errorf("dropped = %d, want 2", o.Dropped())
	}
	if got := string(<-o.Messages()) + string(<-o.Messages()); got != "cd" {
		t.Errorf("kept %q, want newest frames cd", got)
	}

	o.Close()
	o.Close()
	o.Send([]byte("e"))
	select {
	case m := <-o.Messages():
		t.Errorf("send after close delivered %q", m)
	default:
	}
}
