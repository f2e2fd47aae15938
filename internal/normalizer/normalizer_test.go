package normalizer

import (
	"errors"
	"testing"

	"github.com/momopress-backend/internal/domain/rules"
	"github.com/momopress-backend/internal/domain/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func raw(id string, dateTime string, amount float64, txType, message, status string, participants ...transaction.Participant) transaction.RawTransaction {
	return transaction.RawTransaction{
		TransactionID:   transaction.TransactionID(id),
		DateTime:        dateTime,
		Amount:          ptr(amount),
		TransactionType: ptr(txType),
		MessageText:     message,
		Status:          ptr(status),
		Participants:    participants,
	}
}

var nov2025 = transaction.Period{Year: 2025, Month: 11}

func TestNormalize_WorkedExample(t *testing.T) {
	records := []transaction.RawTransaction{
		raw("7", "2025-11-03 10:15 AM", 5000, "Deposit", "You have received 5000 RWF", "confirmed",
			transaction.Participant{Name: "John", PhoneNumber: "0788111222"}),
	}

	out, err := Default().Normalize(records, nov2025)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, transaction.NormalizedTransaction{
		ID:         "MPR202511030007",
		Name:       "John",
		Phone:      "0788111222",
		Amount:     5000,
		Category:   "Income",
		Icon:       "hand-holding-dollar",
		StatusIcon: "circle-check",
		Status:     "Completed",
		Date:       "2025-11-03",
		Time:       "10:15 AM",
	}, out[0])
}

func TestNormalize_OutgoingCategoryFallback(t *testing.T) {
	records := []transaction.RawTransaction{
		raw("7", "2025-11-03 10:15 AM", 5000, "Bills", "", "confirmed",
			transaction.Participant{Name: "John", PhoneNumber: "0788111222"}),
	}

	out, err := Default().Normalize(records, nov2025)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, -5000.0, out[0].Amount)
	assert.Equal(t, "Unknown", out[0].Category)
	assert.Equal(t, "question", out[0].Icon)
}

func TestNormalize_SignInference(t *testing.T) {
	john := transaction.Participant{Name: "John", PhoneNumber: "0788"}
	testCases := []struct {
		name        string
		amount      float64
		txType      string
		message     string
		participant transaction.Participant
		expected    float64
	}{
		{"received beats outgoing category", 500, "bills", "You have received 500", john, 500},
		{"deposit anywhere in message", -300, "gym", "Cash DEPOSIT at agent", john, 300},
		{"payment narration", 200, "Deposit", "Your payment of 200 RWF to Shop", john, -200},
		{"transferred narration", 100, "Deposit", "Transferred to Alice", john, -100},
		{"received prefix only at start", 100, "Deposit", "Note: you have received", john, 100},
		{"outgoing category without narration", 100, "Utilities", "", john, -100},
		{"unknown type is outgoing", 100, "Crypto", "", john, -100},
		{"incoming category without narration", -100, "Deposit", "", john, 100},
		{"transfer category is incoming by default", 100, "Transfer", "", john, 100},
		{"name rule", 100, "Deposit", "", transaction.Participant{Name: "LINDA Uwase"}, -100},
		{"name rule loses to narration", 100, "Deposit", "You have received 100", transaction.Participant{Name: "Linda"}, 100},
		{"magnitude is authoritative", -4500, "Transfer", "", john, 4500},
		{"zero stays zero", 0, "Bills", "", john, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			records := []transaction.RawTransaction{
				raw("1", "2025-11-01 08:00 AM", tc.amount, tc.txType, tc.message, "confirmed", tc.participant),
			}
			out, err := Default().Normalize(records, nov2025)
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Equal(t, tc.expected, out[0].Amount)
		})
	}
}

func TestNormalize_Filter(t *testing.T) {
	records := []transaction.RawTransaction{
		raw("1", "2025-11-01 08:00 AM", 1, "Deposit", "", "confirmed"),
		raw("2", "2025-10-31 11:59 PM", 2, "Deposit", "", "confirmed"),
		raw("3", "2024-11-15 09:00 AM", 3, "Deposit", "", "confirmed"),
		raw("4", "2025-11-30 10:00 PM", 4, "Deposit", "", "confirmed"),
		raw("5", "not a date", 5, "Deposit", "", "confirmed"),
		raw("6", "", 6, "Deposit", "", "confirmed"),
		raw("7", "2025/11/02 10:00 AM", 7, "Deposit", "", "confirmed"),
		raw("8", "02025-011-05", 8, "Deposit", "", "confirmed"),
		raw("9", "2025-11x-05 10:00", 9, "Deposit", "", "confirmed"),
	}

	out, err := Default().Normalize(records, nov2025)
	require.NoError(t, err)

	var ids []string
	for _, tx := range out {
		ids = append(ids, tx.ID)
	}
	assert.Equal(t, []string{"MPR202511010001", "MPR202511300004", "MPR02025011050008", "MPR202511x050009"}, ids)
}

func TestNormalize_FilterExhaustive(t *testing.T) {
	var records []transaction.RawTransaction
	for m := 1; m <= 12; m++ {
		for _, y := range []string{"2024", "2025"} {
			month := []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"}[m-1]
			records = append(records, raw(y+month, y+"-"+month+"-15 10:00 AM", 10, "Deposit", "", "confirmed"))
		}
	}

	for y := 2024; y <= 2025; y++ {
		for m := 1; m <= 12; m++ {
			period := transaction.Period{Year: y, Month: m}
			out, err := Default().Normalize(records, period)
			require.NoError(t, err)
			require.Len(t, out, 1, period.String())
			assert.Equal(t, period.String()+"-15", out[0].Date)
		}
	}
}

func TestNormalize_InvalidMonthYieldsNothing(t *testing.T) {
	records := []transaction.RawTransaction{
		raw("1", "2025-01-01 08:00 AM", 1, "Deposit", "", "confirmed"),
		raw("2", "2025-12-31 08:00 AM", 1, "Deposit", "", "confirmed"),
	}

	for _, month := range []int{0, 13} {
		out, err := Default().Normalize(records, transaction.Period{Year: 2025, Month: month})
		require.NoError(t, err)
		assert.Empty(t, out)
	}
}

func TestNormalize_PreservesOrderAndIsIdempotent(t *testing.T) {
	records := []transaction.RawTransaction{
		raw("30", "2025-11-20 08:00 AM", 1, "Deposit", "", "confirmed"),
		raw("10", "2025-11-02 08:00 AM", 2, "Payment", "", "pending"),
		raw("20", "2025-11-11 08:00 AM", 3, "Gym", "", "failed"),
	}
	n := Default()

	first, err := n.Normalize(records, nov2025)
	require.NoError(t, err)
	second, err := n.Normalize(records, nov2025)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first, 3)
	assert.Equal(t, "MPR202511200030", first[0].ID)
	assert.Equal(t, "MPR202511020010", first[1].ID)
	assert.Equal(t, "MPR202511110020", first[2].ID)

	assert.Equal(t, 1.0, *records[0].Amount, "inputs are not modified")
	assert.Equal(t, "Deposit", *records[0].TransactionType)
}

func TestNormalize_EmptyInput(t *testing.T) {
	out, err := Default().Normalize(nil, nov2025)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestNormalize_Participants(t *testing.T) {
	testCases := []struct {
		name          string
		participants  []transaction.Participant
		expectedName  string
		expectedPhone string
	}{
		{"none", nil, "Unknown", ""},
		{"first wins", []transaction.Participant{{Name: "Ann", PhoneNumber: "1"}, {Name: "Bob", PhoneNumber: "2"}}, "Ann", "1"},
		{"bank transfer", []transaction.Participant{{Name: "Your Money Account At XYZ Branch", PhoneNumber: "555"}}, "Bank Transfer", "555"},
		{"bank transfer lowercase", []transaction.Participant{{Name: "your money account at bk"}}, "Bank Transfer", ""},
		{"bank transfer upper", []transaction.Participant{{Name: "FROM YOUR MONEY ACCOUNT AT EQUITY"}}, "Bank Transfer", ""},
		{"empty name kept", []transaction.Participant{{Name: "", PhoneNumber: "078"}}, "", "078"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			records := []transaction.RawTransaction{
				raw("1", "2025-11-01 08:00 AM", 1, "Deposit", "", "confirmed", tc.participants...),
			}
			out, err := Default().Normalize(records, nov2025)
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Equal(t, tc.expectedName, out[0].Name)
			assert.Equal(t, tc.expectedPhone, out[0].Phone)
		})
	}
}

func TestNormalize_CategoriesAndStatus(t *testing.T) {
	testCases := []struct {
		txType, status                  string
		category, icon                  string
		expectedStatus, expectedStatusI string
	}{
		{"Deposit", "confirmed", "Income", "hand-holding-dollar", "Completed", "circle-check"},
		{"PAYMENT", "CONFIRMED", "Merchant", "store", "Completed", "circle-check"},
		{"credit card", "Confirmed", "Credit Card", "credit-card", "Completed", "circle-check"},
		{"Crypto", "pending", "Unknown", "question", "pending", "circle-xmark"},
		{"Other", "Failed", "Others", "circle-question", "Failed", "circle-xmark"},
		{"Gym", "", "Gym", "dumbbell", "", "circle-xmark"},
	}

	for _, tc := range testCases {
		t.Run(tc.txType+"/"+tc.status, func(t *testing.T) {
			records := []transaction.RawTransaction{raw("1", "2025-11-01 08:00 AM", 1, tc.txType, "", tc.status)}
			out, err := Default().Normalize(records, nov2025)
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Equal(t, tc.category, out[0].Category)
			assert.Equal(t, tc.icon, out[0].Icon)
			assert.Equal(t, tc.expectedStatus, out[0].Status)
			assert.Equal(t, tc.expectedStatusI, out[0].StatusIcon)
		})
	}
}

func TestNormalize_DateTimeAndID(t *testing.T) {
	testCases := []struct {
		name, id, dateTime       string
		expectedID, expectedTime string
	}{
		{"padding", "7", "2025-11-03 10:15 AM", "MPR202511030007", "10:15 AM"},
		{"four digits", "1234", "2025-11-03 10:15 AM", "MPR202511031234", "10:15 AM"},
		{"longer id untouched", "123456", "2025-11-03 10:15 AM", "MPR20251103123456", "10:15 AM"},
		{"no time", "1", "2025-11-03", "MPR202511030001", ""},
		{"extra spaces trimmed", "1", "2025-11-03  10:15  AM ", "MPR202511030001", "10:15  AM"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			records := []transaction.RawTransaction{raw(tc.id, tc.dateTime, 1, "Deposit", "", "confirmed")}
			out, err := Default().Normalize(records, nov2025)
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Equal(t, tc.expectedID, out[0].ID)
			assert.Equal(t, "2025-11-03", out[0].Date)
			assert.Equal(t, tc.expectedTime, out[0].Time)
		})
	}
}

func TestNormalize_MissingRequiredField(t *testing.T) {
	good := raw("1", "2025-11-01 08:00 AM", 1, "Deposit", "", "confirmed")

	testCases := []struct {
		field  string
		mutate func(r *transaction.RawTransaction)
	}{
		{"Amount", func(r *transaction.RawTransaction) { r.Amount = nil }},
		{"TransactionType", func(r *transaction.RawTransaction) { r.TransactionType = nil }},
		{"Status", func(r *transaction.RawTransaction) { r.Status = nil }},
	}

	for _, tc := range testCases {
		t.Run(tc.field, func(t *testing.T) {
			bad := raw("2", "2025-11-02 08:00 AM", 1, "Deposit", "", "confirmed")
			tc.mutate(&bad)

			out, err := Default().Normalize([]transaction.RawTransaction{good, bad}, nov2025)
			require.Error(t, err)
			assert.Nil(t, out)

			var missing transaction.ErrMissingField
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tc.field, missing.Field)
			assert.Equal(t, 1, missing.Index)
			assert.Equal(t, transaction.TransactionID("2"), missing.TransactionID)
		})
	}

	t.Run("outside the period is not inspected", func(t *testing.T) {
		bad := transaction.RawTransaction{TransactionID: "3", DateTime: "2025-10-02 08:00 AM"}
		out, err := Default().Normalize([]transaction.RawTransaction{good, bad}, nov2025)
		require.NoError(t, err)
		assert.Len(t, out, 1)
	})
}

func TestNormalize_RawCategoryMode(t *testing.T) {
	rs := rules.DefaultRuleSet()
	rs.RawCategories = true
	n, err := New(rs)
	require.NoError(t, err)

	records := []transaction.RawTransaction{
		raw("1", "2025-11-01 08:00 AM", 100, "Merchant", "", "confirmed"),
		raw("2", "2025-11-01 09:00 AM", 100, "Payment", "", "confirmed"),
		raw("3", "2025-11-01 10:00 AM", 100, "Crypto", "", "failed"),
	}
	out, err := n.Normalize(records, nov2025)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "Merchant", out[0].Category)
	assert.Empty(t, out[0].Icon)
	assert.Equal(t, -100.0, out[0].Amount, "raw type is the outgoing key")

	assert.Equal(t, "Payment", out[1].Category)
	assert.Equal(t, 100.0, out[1].Amount, "payment is not an outgoing raw type")

	assert.Equal(t, "Crypto", out[2].Category)
	assert.Equal(t, 100.0, out[2].Amount, "unmapped raw type is not outgoing in raw mode")
	assert.Equal(t, "failed", out[2].Status)
	assert.Equal(t, "circle-xmark", out[2].StatusIcon)
}

func TestNormalize_MappedPaymentIsOutgoing(t *testing.T) {
	records := []transaction.RawTransaction{raw("1", "2025-11-01 08:00 AM", 100, "Payment", "", "confirmed")}
	out, err := Default().Normalize(records, nov2025)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Merchant", out[0].Category)
	assert.Equal(t, -100.0, out[0].Amount)
}

func TestNormalize_IconPrefix(t *testing.T) {
	rs := rules.DefaultRuleSet()
	rs.IconPrefix = "fa-"
	n, err := New(rs)
	require.NoError(t, err)

	records := []transaction.RawTransaction{raw("1", "2025-11-01 08:00 AM", 1, "Gym", "", "confirmed")}
	out, err := n.Normalize(records, nov2025)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "fa-dumbbell", out[0].Icon)
	assert.Equal(t, "fa-circle-check", out[0].StatusIcon)
}

func TestNormalize_CustomRules(t *testing.T) {
	rs := rules.DefaultRuleSet()
	rs.NameRules = nil
	rs.Categories["airtime"] = rules.Category{Name: "Airtime", Icon: "mobile"}
	rs.OutgoingCategories = append(rs.OutgoingCategories, "airtime")
	n, err := New(rs)
	require.NoError(t, err)

	records := []transaction.RawTransaction{
		raw("1", "2025-11-01 08:00 AM", 100, "Deposit", "", "confirmed", transaction.Participant{Name: "Linda"}),
		raw("2", "2025-11-01 08:00 AM", 50, "AIRTIME", "", "confirmed"),
	}
	out, err := n.Normalize(records, nov2025)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 100.0, out[0].Amount, "name rule removed")
	assert.Equal(t, "Airtime", out[1].Category)
	assert.Equal(t, -50.0, out[1].Amount)
}

func TestNew_InvalidRuleSet(t *testing.T) {
	rs := rules.DefaultRuleSet()
	rs.BankTransferPattern = "(["
	n, err := New(rs)
	assert.Nil(t, n)
	assert.Error(t, err)
}

func TestLeadingInt(t *testing.T) {
	testCases := []struct {
		in       string
		expected int
		ok       bool
	}{
		{"2025", 2025, true},
		{"07", 7, true},
		{"  11", 11, true},
		{"+3", 3, true},
		{"-4", -4, true},
		{"11x", 11, true},
		{"x11", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"99999999999", 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := leadingInt(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, got)
			}
		})
	}
}
