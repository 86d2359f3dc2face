package payment

import "strconv"

// HashFields are the request fields covered by both hash directions.
type HashFields struct {
	TxnID       string
	Amount      string
	ProductInfo string
	FirstName   string
	Email       string
	UDF         [10]string
}

type InitiateRequest struct {
	TxnID       string
	Amount      float64
	ProductInfo string
	FirstName   string
	Email       string
	Phone       string
	UDF         [10]string
}

// FormatAmount renders amount with exactly two decimals, as the gateway signs it.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

func (r InitiateRequest) HashFields() HashFields {
	return HashFields{
		TxnID:       r.TxnID,
		Amount:      FormatAmount(r.Amount),
		ProductInfo: r.ProductInfo,
		FirstName:   r.FirstName,
		Email:       r.Email,
		UDF:         r.UDF,
	}
}

type InitiateResult struct {
	AccessKey  string `json:"accessKey"`
	PaymentURL string `json:"paymentUrl"`
}

type initiateResponse struct {
	Status    int    `json:"status"`
	Data      any    `json:"data"`
	ErrorDesc string `json:"error_desc"`
	Error     string `json:"error"`
}

// CallbackPayload is what the gateway posts (or redirects with) after payment.
type CallbackPayload struct {
	Key          string `form:"key" json:"key"`
	TxnID        string `form:"txnid" json:"txnid"`
	Amount       string `form:"amount" json:"amount"`
	ProductInfo  string `form:"productinfo" json:"productinfo"`
	FirstName    string `form:"firstname" json:"firstname"`
	Email        string `form:"email" json:"email"`
	Phone        string `form:"phone" json:"phone"`
	Status       string `form:"status" json:"status"`
	EasepayID    string `form:"easepayid" json:"easepayid"`
	Mode         string `form:"mode" json:"mode"`
	Hash         string `form:"hash" json:"hash"`
	Error        string `form:"error" json:"error"`
	ErrorMessage string `form:"error_Message" json:"error_Message"`
	UDF1         string `form:"udf1" json:"udf1"`
	UDF2         string `form:"udf2" json:"udf2"`
	UDF3         string `form:"udf3" json:"udf3"`
	UDF4         string `form:"udf4" json:"udf4"`
	UDF5         string `form:"udf5" json:"udf5"`
	UDF6         string `form:"udf6" json:"udf6"`
	UDF7         string `form:"udf7" json:"udf7"`
	UDF8         string `form:"udf8" json:"udf8"`
	UDF9         string `form:"udf9" json:"udf9"`
	UDF10        string `form:"udf10" json:"udf10"`
}

func (p CallbackPayload) UDFs() [10]string {
	return [10]string{p.UDF1, p.UDF2, p.UDF3, p.UDF4, p.UDF5, p.UDF6, p.UDF7, p.UDF8, p.UDF9, p.UDF10}
}

func (p *CallbackPayload) SetUDFs(udf [10]string) {
	p.UDF1, p.UDF2, p.UDF3, p.UDF4, p.UDF5 = udf[0], udf[1], udf[2], udf[3], udf[4]
	p.UDF6, p.UDF7, p.UDF8, p.UDF9, p.UDF10 = udf[5], udf[6], udf[7], udf[8], udf[9]
}

func (p CallbackPayload) HashFields() HashFields {
	return HashFields{
		TxnID:       p.TxnID,
		Amount:      p.Amount,
		ProductInfo: p.ProductInfo,
		FirstName:   p.FirstName,
		Email:       p.Email,
		UDF:         p.UDFs(),
	}
}
