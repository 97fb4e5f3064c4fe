package runtime

// ContentTypeJSON is the only wire format the client speaks natively.
const ContentTypeJSON string = "application/json"
