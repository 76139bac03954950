package paddle

// pipelineRequest is the PaddleX serving OCR request body.
type pipelineRequest struct {
	File     string `json:"file"`     // base64 image
	FileType int    `json:"fileType"` // 1 = image
}

type pipelineResponse struct {
	LogID     string          `json:"logId"`
	ErrorCode int             `json:"errorCode"`
	ErrorMsg  string          `json:"errorMsg"`
	Result    *pipelineResult `json:"result"`
}

type pipelineResult struct {
	OCRResults []pipelineOCRResult `json:"ocrResults"`
}

type pipelineOCRResult struct {
	PrunedResult prunedResult `json:"prunedResult"`
}

type prunedResult struct {
	RecTexts  []string  `json:"rec_texts"`
	RecScores []float64 `json:"rec_scores"`
}

// hubRequest is the PaddleHub ocr_system request body.
type hubRequest struct {
	Images []string `json:"images"`
}

type hubResponse struct {
	Msg     string      `json:"msg"`
	Status  string      `json:"status"`
	Results [][]hubLine `json:"results"`
}

type hubLine struct {
	Text       string   `json:"text"`
	Confidence float64  `json:"confidence"`
	TextRegion [][2]int `json:"text_region"`
}
