package entities

import (
	"strconv"
	"testing"
	"time"
)

func fixedOrderIDs(ids ...string) func() string {
	i := 0
	return func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}
}

func TestDonation_AmountNormalization(t *testing.T) {
	cases := []struct {
		name   string
		raw    map[string]string
		expect string
	}{
		{"valid amount is formatted", map[string]string{"amount": "25.5"}, "25.50"},
		{"integer amount", map[string]string{"amount": "10"}, "10.00"},
		{"trailing dot", map[string]string{"amount": "3."}, "3.00"},
		{"absent amount", map[string]string{}, "0.00"},
		{"garbage amount", map[string]string{"amount": "ten"}, "0.00"},
		{"negative amount", map[string]string{"amount": "-5"}, "0.00"},
		{"numeric amountOther", map[string]string{"amount": "", "amountOther": "7.125"}, "7.13"},
		{"amountOther wins over -1", map[string]string{"amount": "-1", "amountOther": "12"}, "12.00"},
		{"minus one copies amountOther verbatim", map[string]string{"amount": "-1", "amountOther": "abc"}, "abc"},
		{"non numeric amountOther", map[string]string{"amount": "x", "amountOther": "y"}, "0.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDonation(tc.raw, DonationOptions{})
			if got := d.Value("amount"); got != tc.expect {
				t.Fatalf("expected %q, got %q", tc.expect, got)
			}
		})
	}
}

func TestDonation_OrderIDs(t *testing.T) {
	t.Run("generated once per record", func(t *testing.T) {
		d := NewDonation(map[string]string{"amount": "1"}, DonationOptions{OrderIDs: fixedOrderIDs("111", "222", "333")})
		if d.Value("order_id") != "111" || d.Value("i_order_id") != "111" {
			t.Fatalf("unexpected ids %q %q", d.Value("order_id"), d.Value("i_order_id"))
		}
		d.AddData(map[string]string{"fname": "Ada"})
		if d.Value("order_id") != "111" {
			t.Fatalf("order id changed on renormalization: %q", d.Value("order_id"))
		}
	})

	t.Run("existing internal id is kept", func(t *testing.T) {
		d := NewDonation(map[string]string{"i_order_id": "999"}, DonationOptions{OrderIDs: fixedOrderIDs("111")})
		if d.Value("i_order_id") != "999" || d.Value("order_id") != "111" {
			t.Fatalf("unexpected ids %q %q", d.Value("order_id"), d.Value("i_order_id"))
		}
	})

	t.Run("external id pins both", func(t *testing.T) {
		d := NewDonation(map[string]string{"i_order_id": "999"}, DonationOptions{ExternalOrderID: "ext-1"})
		if d.Value("order_id") != "ext-1" || d.Value("i_order_id") != "ext-1" {
			t.Fatalf("unexpected ids %q %q", d.Value("order_id"), d.Value("i_order_id"))
		}
	})

	t.Run("regenerate order id", func(t *testing.T) {
		d := NewDonation(nil, DonationOptions{OrderIDs: fixedOrderIDs("111", "222")})
		if !d.Regenerate("order_id") {
			t.Fatalf("expected order_id to be regenerable")
		}
		if d.Value("order_id") != "222" {
			t.Fatalf("expected 222, got %q", d.Value("order_id"))
		}
		d.AddData(map[string]string{"email": "a@b.c"})
		if d.Value("order_id") != "222" {
			t.Fatalf("regenerated id lost on renormalization: %q", d.Value("order_id"))
		}
		if d.Regenerate("email") {
			t.Fatalf("email must not be regenerable")
		}
	})

	t.Run("default generator is numeric", func(t *testing.T) {
		id := GenerateOrderID()
		if _, err := strconv.ParseInt(id, 10, 64); err != nil {
			t.Fatalf("expected numeric id, got %q", id)
		}
	})
}

func TestDonation_Normalization(t *testing.T) {
	d := NewDonation(map[string]string{
		"fname":          "Ada",
		"country":        "FR",
		"country2":       "",
		"zip2":           "75002",
		"zip":            "75001",
		"email-opt":      "1",
		"comment-option": "",
	}, DonationOptions{Gateway: "globalcollect"})

	if d.Value("country2") != "FR" || d.Value("fname2") != "Ada" {
		t.Fatalf("secondary address did not fall back: %q %q", d.Value("country2"), d.Value("fname2"))
	}
	if d.Value("zip2") != "75002" {
		t.Fatalf("explicit secondary value overwritten: %q", d.Value("zip2"))
	}
	if d.Value("optout") != "0" || d.Value("anonymous") != "1" {
		t.Fatalf("unexpected opt-outs optout=%q anonymous=%q", d.Value("optout"), d.Value("anonymous"))
	}
	if d.Value("gateway") != "globalcollect" {
		t.Fatalf("gateway not set: %q", d.Value("gateway"))
	}
}

func TestDonation_EscapesOnRead(t *testing.T) {
	d := NewDonation(map[string]string{"comment": `<b>"hi" & bye</b> &amp; &#39;`}, DonationOptions{})
	want := `&lt;b&gt;&quot;hi&quot; &amp; bye&lt;/b&gt; &amp; &#39;`
	if got := d.Value("comment"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := d.Escaped()["comment"]; got != want {
		t.Fatalf("escaped view mismatch: %q", got)
	}
	if EscapeHTML(want) != want {
		t.Fatalf("escaping must not double encode")
	}
}

func TestDonation_NumAttempt(t *testing.T) {
	d := NewDonation(map[string]string{"numAttempt": "garbage"}, DonationOptions{})
	d.IncrementNumAttempt()
	d.IncrementNumAttempt()
	if d.NumAttempt() != 2 {
		t.Fatalf("expected 2, got %d", d.NumAttempt())
	}
}

func TestDonation_TrackingData(t *testing.T) {
	d := NewDonation(map[string]string{
		"utm_source": "B11.cc3.cc",
		"referrer":   "http://example.org",
		"card_num":   "4111111111111111",
	}, DonationOptions{})
	data := d.TrackingData(time.Date(2024, 3, 1, 10, 4, 5, 0, time.UTC))
	if data["ts"] != "20240301100405" {
		t.Fatalf("unexpected ts %q", data["ts"])
	}
	if _, ok := data["card_num"]; ok {
		t.Fatalf("card data must not be tracked")
	}
	if !d.UtmSourceIsCCLanding() {
		t.Fatalf("expected cc landing page")
	}
}

func TestNormalizeUtmSource(t *testing.T) {
	cases := []struct{ source, id, want string }{
		{"B11.default.cc", "", "B11.default.cc"},
		{"B11.default.pp", "", "B11.default.cc"},
		{"B11", "3", "B11.cc3.cc"},
		{"B11.cc3.cc", "3", "B11.cc3.cc"},
		{"", "", "..cc"},
	}
	for _, tc := range cases {
		if got := NormalizeUtmSource(tc.source, tc.id); got != tc.want {
			t.Fatalf("NormalizeUtmSource(%q, %q) = %q, want %q", tc.source, tc.id, got, tc.want)
		}
	}
}
