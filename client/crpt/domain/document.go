package domain

// Tipos de registro do domínio.
//
// Document e Product são valores imutáveis após a construção: o chamador monta,
// passa para o pipeline de envio e descarta. Nenhum componente retém referência
// além do tempo de vida da chamada.

// Document representa um documento de introdução de mercadoria em circulação.
//
// Os nomes dos campos no JSON seguem exatamente o formato aceito pelo serviço
// remoto (camelCase, case-sensitive).
type Document struct {
	ParticipantInn  string    `json:"participantInn"`
	DocID           string    `json:"docId"`
	DocStatus       string    `json:"docStatus"`
	DocType         string    `json:"docType"`
	ImportRequest   bool      `json:"importRequest"`
	OwnerInn        string    `json:"ownerInn"`
	ParticipantInn2 string    `json:"participantInn2"`
	ProducerInn     string    `json:"producerInn"`
	ProductionDate  string    `json:"productionDate"`
	ProductionType  string    `json:"productionType"`
	Products        []Product `json:"products"`
	RegDate         string    `json:"regDate"`
	RegNumber       string    `json:"regNumber"`
}

// Product é um item do documento, com os metadados do certificado
// e os códigos de identificação da unidade (uit/uitu).
type Product struct {
	CertificateDocument       string `json:"certificateDocument"`
	CertificateDocumentDate   string `json:"certificateDocumentDate"`
	CertificateDocumentNumber string `json:"certificateDocumentNumber"`
	OwnerInn                  string `json:"ownerInn"`
	ProducerInn               string `json:"producerInn"`
	ProductionDate            string `json:"productionDate"`
	TnvedCode                 string `json:"tnvedCode"`
	UitCode                   string `json:"uitCode"`
	UituCode                  string `json:"uituCode"`
}
